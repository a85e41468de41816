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

import "slices"

// sortedCopy returns values sorted in l's order without touching the input.
func (l *List[V]) sortedCopy(values []V) []V {
	buf := slices.Clone(values)
	slices.SortStableFunc(buf, l.compare)
	return buf
}

// AddAll inserts every value with one sort of the input and one linear
// pass over the list, instead of len(values) separate inserts.
func (l *List[V]) AddAll(values []V) {
	l.mergeSorted(l.sortedCopy(values))
}

// RemoveAll removes one occurrence per requested value. A value requested
// twice removes two occurrences. It returns the number of removed elements.
func (l *List[V]) RemoveAll(values []V) int {
	if len(values) == 0 || l.front == nil {
		return 0
	}
	removed := 0
	cur := l.front
	for _, v := range l.sortedCopy(values) {
		for cur != nil && l.before(cur.value, v) {
			cur = cur.next
		}
		if cur == nil {
			break
		}
		if l.equal(cur.value, v) {
			next := cur.next
			l.unlink(cur)
			cur = next
			removed++
		}
	}
	if removed > 0 {
		l.invalidate()
	}
	return removed
}

// RemoveAllAndEveryOccurrence removes every element equal to any of values.
func (l *List[V]) RemoveAllAndEveryOccurrence(values []V) int {
	if len(values) == 0 || l.front == nil {
		return 0
	}
	removed := 0
	cur := l.front
	for _, v := range l.sortedCopy(values) {
		for cur != nil && l.before(cur.value, v) {
			cur = cur.next
		}
		for cur != nil && l.equal(cur.value, v) {
			next := cur.next
			l.unlink(cur)
			cur = next
			removed++
		}
		if cur == nil {
			break
		}
	}
	if removed > 0 {
		l.invalidate()
	}
	return removed
}
