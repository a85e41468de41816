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

import "fmt"

// Validate walks the whole list and reports the first broken structural
// invariant: link symmetry, ownership, front/back consistency, element
// count, sort order and cache validity.
func (l *List[V]) Validate() error {
	if (l.front == nil) != (l.back == nil) || (l.front == nil) != (l.length == 0) {
		return fmt.Errorf("front/back/len disagree: front nil %v, back nil %v, len %d",
			l.front == nil, l.back == nil, l.length)
	}
	if l.front != nil && l.front.prev != nil {
		return fmt.Errorf("front has a predecessor")
	}
	if l.back != nil && l.back.next != nil {
		return fmt.Errorf("back has a successor")
	}

	n := 0
	hintFound := false
	var last *elem[V]
	for e := l.front; e != nil; e = e.next {
		if e.list != l {
			return fmt.Errorf("element %d is owned by another list", n)
		}
		if e.prev != last {
			return fmt.Errorf("element %d has a broken prev link", n)
		}
		if last != nil && l.before(e.value, last.value) {
			return fmt.Errorf("element %d (%v) is out of %s order after %v", n, e.value, l.order, last.value)
		}
		if e == l.hint {
			hintFound = true
		}
		last = e
		n++
	}
	if last != l.back {
		return fmt.Errorf("forward walk does not end at back")
	}
	if n != l.length {
		return fmt.Errorf("len is %d but %d elements are linked", l.length, n)
	}
	if l.cached() != nil && !hintFound {
		return fmt.Errorf("insertion-point cache points outside the list")
	}
	return nil
}
