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

import (
	"cmp"
	"fmt"
	"slices"
)

// find returns the first element equal to v and its index, or nil and -1.
//
// Two cursors walk inward from both ends. Values outside [front, back] are
// rejected without any traversal, and each cursor gives up as soon as it
// moves past the slot v would occupy.
func (l *List[V]) find(v V) (*elem[V], int) {
	if l.outside(v) {
		return nil, -1
	}
	left, right := l.front, l.back
	i, j := 0, l.length-1
	for i <= j {
		c := l.compare(v, left.value)
		if c == 0 {
			return left, i
		}
		if c < 0 {
			return nil, -1
		}

		c = l.compare(v, right.value)
		if c == 0 {
			// Everything left of i is known to precede v, so the start of
			// this run lies in [i, j].
			for right.prev != nil && l.equal(right.prev.value, v) {
				right = right.prev
				j--
			}
			return right, j
		}
		if c > 0 {
			return nil, -1
		}

		left, right = left.next, right.prev
		i++
		j--
	}
	return nil, -1
}

func (l *List[V]) Contains(v V) bool {
	e, _ := l.find(v)
	return e != nil
}

// IndexOf returns the index of the first element equal to v, or -1.
func (l *List[V]) IndexOf(v V) int {
	_, i := l.find(v)
	return i
}

// LastIndexOf returns the index of the last element equal to v, or -1.
func (l *List[V]) LastIndexOf(v V) int {
	e, i := l.find(v)
	if e == nil {
		return -1
	}
	for e.next != nil && l.equal(e.next.value, v) {
		e = e.next
		i++
	}
	return i
}

// Count returns the number of elements equal to v.
func (l *List[V]) Count(v V) int {
	e, _ := l.find(v)
	n := 0
	for ; e != nil && l.equal(e.value, v); e = e.next {
		n++
	}
	return n
}

// GreaterThan returns a new list of the values strictly greater than v.
func (l *List[V]) GreaterThan(v V) *List[V] {
	greater := func(x V) bool { return cmp.Compare(x, v) > 0 }
	if l.order == Ascending {
		return l.suffix(greater)
	}
	return l.prefix(greater)
}

// LessThan returns a new list of the values strictly less than v.
func (l *List[V]) LessThan(v V) *List[V] {
	less := func(x V) bool { return cmp.Compare(x, v) < 0 }
	if l.order == Ascending {
		return l.prefix(less)
	}
	return l.suffix(less)
}

// prefix collects the leading run of values matching keep.
func (l *List[V]) prefix(keep func(V) bool) *List[V] {
	var out []V
	for e := l.front; e != nil && keep(e.value); e = e.next {
		out = append(out, e.value)
	}
	return fromSorted(out, l.order)
}

// suffix collects the trailing run of values matching keep, walking from
// the back.
func (l *List[V]) suffix(keep func(V) bool) *List[V] {
	var out []V
	for e := l.back; e != nil && keep(e.value); e = e.prev {
		out = append(out, e.value)
	}
	slices.Reverse(out)
	return fromSorted(out, l.order)
}

// Range returns a new list of the values in [lo, hi]. Bounds use the
// natural ordering of V whatever the list order is.
func (l *List[V]) Range(lo, hi V) *List[V] {
	if cmp.Compare(lo, hi) > 0 {
		return New[V](l.order)
	}
	first, last := lo, hi
	if l.order == Descending {
		first, last = hi, lo
	}
	var out []V
	for e := l.front; e != nil; e = e.next {
		if l.before(e.value, first) {
			continue
		}
		if l.before(last, e.value) {
			break
		}
		out = append(out, e.value)
	}
	return fromSorted(out, l.order)
}

// Slice returns a new list holding the elements at indexes [start, end).
func (l *List[V]) Slice(start, end int) (*List[V], error) {
	if start < 0 || end < start || end > l.length {
		return nil, fmt.Errorf("%w: slice [%d:%d], len %d", ErrIndexOutOfRange, start, end, l.length)
	}
	n := end - start
	out := make([]V, 0, n)
	if n == 0 {
		return fromSorted(out, l.order), nil
	}
	if start <= l.length-end {
		for e := l.at(start); len(out) < n; e = e.next {
			out = append(out, e.value)
		}
	} else {
		for e := l.at(end - 1); len(out) < n; e = e.prev {
			out = append(out, e.value)
		}
		slices.Reverse(out)
	}
	return fromSorted(out, l.order), nil
}

// Find returns the first value matching pred.
func (l *List[V]) Find(pred func(V) bool) (v V, ok bool) {
	for e := l.front; e != nil; e = e.next {
		if pred(e.value) {
			return e.value, true
		}
	}
	return
}

// FindLast returns the last value matching pred.
func (l *List[V]) FindLast(pred func(V) bool) (v V, ok bool) {
	for e := l.back; e != nil; e = e.prev {
		if pred(e.value) {
			return e.value, true
		}
	}
	return
}

// FindAll returns a new list of the values matching pred.
func (l *List[V]) FindAll(pred func(V) bool) *List[V] {
	var out []V
	for e := l.front; e != nil; e = e.next {
		if pred(e.value) {
			out = append(out, e.value)
		}
	}
	return fromSorted(out, l.order)
}

// Filter keeps only the elements matching pred and returns l.
func (l *List[V]) Filter(pred func(V) bool) *List[V] {
	changed := false
	for e := l.front; e != nil; {
		next := e.next
		if !pred(e.value) {
			l.unlink(e)
			changed = true
		}
		e = next
	}
	if changed {
		l.invalidate()
	}
	return l
}
