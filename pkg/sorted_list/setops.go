/*
 * Copyright (C) 2020-2026, IrineSistiana
 *
 * This file is part of seqlist.
 *
 * seqlist is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * seqlist is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package sorted_list

// The set operations below never modify their operands (except Unique)
// and return lists in l's order. When other is kept in the opposite
// order it is read back to front.

// mergedValues returns the values of l and other interleaved in l's order.
func (l *List[V]) mergedValues(other *List[V]) []V {
	a := l.Values()
	b := other.valuesIn(l.order)
	out := make([]V, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if l.before(b[j], a[i]) {
			out = append(out, b[j])
			j++
		} else {
			out = append(out, a[i])
			i++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// Union returns the distinct values present in either list.
func (l *List[V]) Union(other *List[V]) *List[V] {
	merged := l.mergedValues(other)
	return fromSorted(l.collapse(merged), l.order)
}

// UnionWithDuplicates returns every value of both lists.
func (l *List[V]) UnionWithDuplicates(other *List[V]) *List[V] {
	return fromSorted(l.mergedValues(other), l.order)
}

// Intersect returns the distinct values present in both lists.
func (l *List[V]) Intersect(other *List[V]) *List[V] {
	a := l.front
	b := other.valuesIn(l.order)
	var out []V
	j := 0
	for a != nil && j < len(b) {
		switch c := l.compare(a.value, b[j]); {
		case c < 0:
			a = a.next
		case c > 0:
			j++
		default:
			if len(out) == 0 || !l.equal(out[len(out)-1], a.value) {
				out = append(out, a.value)
			}
			a = a.next
			j++
		}
	}
	return fromSorted(out, l.order)
}

// Diff returns the elements of l whose value does not occur in other.
// Duplicates in l are kept.
func (l *List[V]) Diff(other *List[V]) *List[V] {
	b := other.valuesIn(l.order)
	out := make([]V, 0, l.length)
	j := 0
	for a := l.front; a != nil; a = a.next {
		for j < len(b) && l.before(b[j], a.value) {
			j++
		}
		if j < len(b) && l.equal(b[j], a.value) {
			continue
		}
		out = append(out, a.value)
	}
	return fromSorted(out, l.order)
}

// Unique drops every element equal to its predecessor, in place, and
// returns l.
func (l *List[V]) Unique() *List[V] {
	changed := false
	for e := l.front; e != nil && e.next != nil; {
		if l.equal(e.value, e.next.value) {
			l.unlink(e.next)
			changed = true
			continue
		}
		e = e.next
	}
	if changed {
		l.invalidate()
	}
	return l
}

// collapse removes consecutive duplicates from sorted values in place.
func (l *List[V]) collapse(values []V) []V {
	if len(values) == 0 {
		return values
	}
	out := values[:1]
	for _, v := range values[1:] {
		if !l.equal(out[len(out)-1], v) {
			out = append(out, v)
		}
	}
	return out
}
