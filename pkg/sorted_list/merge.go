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
	"iter"
	"slices"
)

// Merge moves every element of other into l in O(len(l)+len(other)).
// Nodes are relinked, not copied, and other is left empty.
// Merging a list into itself or merging an empty list is a no-op.
func (l *List[V]) Merge(other *List[V]) error {
	if other == nil || other == l || other.front == nil {
		return nil
	}
	if other.order != l.order {
		return fmt.Errorf("%w: merging %s into %s", ErrDirectionMismatch, other.order, l.order)
	}

	front, back, n := other.front, other.back, other.length
	other.Clear()
	for e := front; e != nil; e = e.next {
		e.list = l
	}
	l.invalidate()

	switch {
	case l.front == nil:
		l.front, l.back = front, back
	case !l.before(front.value, l.back.value):
		// Everything goes after the current back.
		l.back.next = front
		front.prev = l.back
		l.back = back
	case l.before(back.value, l.front.value):
		back.next = l.front
		l.front.prev = back
		l.front = front
	default:
		l.interleave(front, back)
	}
	l.length += n
	return nil
}

// interleave merges the detached chain b..bBack into l. Ties take the
// element already in l first.
func (l *List[V]) interleave(b, bBack *elem[V]) {
	a := l.front
	var head, tail *elem[V]
	appendElem := func(e *elem[V]) {
		e.prev = tail
		if tail == nil {
			head = e
		} else {
			tail.next = e
		}
		tail = e
	}

	for a != nil && b != nil {
		if l.before(b.value, a.value) {
			e := b
			b = b.next
			appendElem(e)
		} else {
			e := a
			a = a.next
			appendElem(e)
		}
	}

	// Exactly one side has a remainder; it is already linked to its own end.
	if a != nil {
		a.prev = tail
		tail.next = a
		tail = l.back
	} else {
		b.prev = tail
		tail.next = b
		tail = bBack
	}

	head.prev = nil
	tail.next = nil
	l.front, l.back = head, tail
}

// MergeSeq merges values from any source into l. The source is buffered
// (O(m) extra space) and sorted only if it is not already in l's order.
func (l *List[V]) MergeSeq(seq iter.Seq[V]) {
	buf := slices.Collect(seq)
	if !slices.IsSortedFunc(buf, l.compare) {
		slices.SortStableFunc(buf, l.compare)
	}
	l.mergeSorted(buf)
}

// mergeSorted links new elements for buf, which must be in l's order, in a
// single two-cursor pass against the live chain.
func (l *List[V]) mergeSorted(buf []V) {
	if len(buf) == 0 {
		return
	}
	cur := l.front
	for _, v := range buf {
		for cur != nil && !l.before(v, cur.value) {
			cur = cur.next
		}
		e := &elem[V]{value: v}
		if cur == nil {
			l.pushBack(e)
		} else {
			l.insertBefore(e, cur)
		}
	}
	l.invalidate()
}

// Reverse flips the sort order in place by swapping every element's links.
func (l *List[V]) Reverse() {
	for e := l.front; e != nil; e = e.prev {
		e.next, e.prev = e.prev, e.next
	}
	l.front, l.back = l.back, l.front
	l.order = l.order.Reverse()
	l.invalidate()
}
