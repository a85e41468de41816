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

// Add inserts v after every element it does not precede, so runs of equal
// values keep insertion order.
//
// Appends and inserts close to the previous insertion point cost O(1) and
// O(distance) respectively. Other inserts scan forward from the front.
func (l *List[V]) Add(v V) {
	e := &elem[V]{value: v}

	switch {
	case l.front == nil:
		l.pushBack(e)
		return
	case l.before(v, l.front.value):
		l.pushFront(e)
		l.invalidate()
		return
	case !l.before(v, l.back.value):
		l.pushBack(e)
		l.hint = e
		return
	}

	// From here front <= v < back, so both walks below stop on a
	// non-nil element.
	if h := l.cached(); h != nil && l.before(v, h.value) {
		p := h.prev
		for l.before(v, p.value) {
			p = p.prev
		}
		l.insertAfter(e, p)
	} else {
		n := l.front.next
		if h != nil {
			n = h.next
		}
		for !l.before(v, n.value) {
			n = n.next
		}
		l.insertBefore(e, n)
	}
	l.hint = e
}
