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
	"fmt"
	"slices"
)

// outside reports whether v cannot be in l because it falls before the
// front or after the back.
func (l *List[V]) outside(v V) bool {
	return l.front == nil || l.before(v, l.front.value) || l.before(l.back.value, v)
}

// Remove unlinks the first element equal to v. The scan stops as soon as
// it passes the slot v would occupy.
func (l *List[V]) Remove(v V) bool {
	if l.outside(v) {
		return false
	}
	for e := l.front; e != nil; e = e.next {
		c := l.compare(v, e.value)
		if c < 0 {
			return false
		}
		if c == 0 {
			l.unlink(e)
			l.invalidate()
			return true
		}
	}
	return false
}

// RemoveEveryOccurrence unlinks the whole run of elements equal to v and
// returns its length.
func (l *List[V]) RemoveEveryOccurrence(v V) int {
	e, _ := l.find(v)
	if e == nil {
		return 0
	}
	removed := 0
	for e != nil && l.equal(e.value, v) {
		next := e.next
		l.unlink(e)
		removed++
		e = next
	}
	l.invalidate()
	return removed
}

// RemoveAt unlinks the element at index i and returns its value.
func (l *List[V]) RemoveAt(i int) (V, error) {
	if err := l.checkIndex(i); err != nil {
		var zero V
		return zero, err
	}
	e := l.unlink(l.at(i))
	l.invalidate()
	return e.value, nil
}

// RemoveFirst unlinks up to n elements from the front and returns their
// values in list order.
func (l *List[V]) RemoveFirst(n int) ([]V, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: count %d", ErrIndexOutOfRange, n)
	}
	n = min(n, l.length)
	removed := make([]V, 0, n)
	for ; n > 0; n-- {
		removed = append(removed, l.unlink(l.front).value)
	}
	l.invalidate()
	return removed, nil
}

// RemoveLast unlinks up to n elements from the back, walking backward from
// the tail, and returns their values in list order.
func (l *List[V]) RemoveLast(n int) ([]V, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: count %d", ErrIndexOutOfRange, n)
	}
	n = min(n, l.length)
	removed := make([]V, 0, n)
	for ; n > 0; n-- {
		removed = append(removed, l.unlink(l.back).value)
	}
	slices.Reverse(removed)
	l.invalidate()
	return removed, nil
}
