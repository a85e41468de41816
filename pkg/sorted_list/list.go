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

// Package sorted_list implements a doubly-linked list that keeps its
// elements sorted under every mutation.
//
// Sequential inserts are amortized O(1) thanks to an insertion-point cache
// that remembers the last node an element was linked next to. Merges, bulk
// operations and set algebra all run as single linear passes that rely on
// both operands already being sorted.
//
// A List is not safe for concurrent use.
package sorted_list

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
)

type List[V cmp.Ordered] struct {
	front, back *elem[V]
	length      int
	order       Order

	// hint is the insertion-point cache. It is only trusted while
	// hint.list == l, so a stale hint falls back to a scan from front.
	hint *elem[V]
}

type elem[V cmp.Ordered] struct {
	next, prev *elem[V]
	list       *List[V]
	value      V
}

// New returns an empty list kept in order o.
func New[V cmp.Ordered](o Order) *List[V] {
	return &List[V]{order: o}
}

// FromSlice returns a list holding a copy of values kept in order o.
// The input is sorted once and linked in a single pass. Equal values keep
// their relative input order.
func FromSlice[V cmp.Ordered](values []V, o Order) *List[V] {
	buf := slices.Clone(values)
	slices.SortStableFunc(buf, func(a, b V) int { return Compare(o, a, b) })
	return fromSorted(buf, o)
}

// FromSeq drains seq into a new list kept in order o.
func FromSeq[V cmp.Ordered](seq iter.Seq[V], o Order) *List[V] {
	buf := slices.Collect(seq)
	slices.SortStableFunc(buf, func(a, b V) int { return Compare(o, a, b) })
	return fromSorted(buf, o)
}

// fromSorted links values, which must already be in order o, into a new list.
func fromSorted[V cmp.Ordered](values []V, o Order) *List[V] {
	l := New[V](o)
	for _, v := range values {
		l.pushBack(&elem[V]{value: v})
	}
	return l
}

func (l *List[V]) compare(a, b V) int {
	return Compare(l.order, a, b)
}

// before reports whether a strictly precedes b in the list order.
func (l *List[V]) before(a, b V) bool {
	return l.compare(a, b) < 0
}

func (l *List[V]) equal(a, b V) bool {
	return cmp.Compare(a, b) == 0
}

// link inserts e between prev and next. Either neighbour may be nil,
// in which case e becomes the front or the back.
func (l *List[V]) link(e, prev, next *elem[V]) *elem[V] {
	e.prev, e.next, e.list = prev, next, l
	if prev != nil {
		prev.next = e
	} else {
		l.front = e
	}
	if next != nil {
		next.prev = e
	} else {
		l.back = e
	}
	l.length++
	return e
}

func (l *List[V]) pushFront(e *elem[V]) *elem[V] {
	return l.link(e, nil, l.front)
}

func (l *List[V]) pushBack(e *elem[V]) *elem[V] {
	return l.link(e, l.back, nil)
}

func (l *List[V]) insertBefore(e, mark *elem[V]) *elem[V] {
	return l.link(e, mark.prev, mark)
}

func (l *List[V]) insertAfter(e, mark *elem[V]) *elem[V] {
	return l.link(e, mark, mark.next)
}

// unlink detaches e from l. It does not touch the insertion-point cache.
func (l *List[V]) unlink(e *elem[V]) *elem[V] {
	if e.list != l {
		panic("elem does not belong to this list")
	}

	l.length--

	p, n := e.prev, e.next
	if p != nil {
		p.next = n
	} else {
		l.front = n
	}
	if n != nil {
		n.prev = p
	} else {
		l.back = p
	}

	e.prev = nil
	e.next = nil
	e.list = nil
	return e
}

// cached returns the insertion-point cache if it still points into l.
func (l *List[V]) cached() *elem[V] {
	if h := l.hint; h != nil && h.list == l {
		return h
	}
	return nil
}

func (l *List[V]) invalidate() {
	l.hint = nil
}

// at returns the element at index i, walking from whichever end is closer.
// i must be in [0, l.length).
func (l *List[V]) at(i int) *elem[V] {
	if i <= l.length-1-i {
		e := l.front
		for ; i > 0; i-- {
			e = e.next
		}
		return e
	}
	e := l.back
	for j := l.length - 1 - i; j > 0; j-- {
		e = e.prev
	}
	return e
}

func (l *List[V]) checkIndex(i int) error {
	if i < 0 || i >= l.length {
		return fmt.Errorf("%w: index %d, len %d", ErrIndexOutOfRange, i, l.length)
	}
	return nil
}

func (l *List[V]) Len() int {
	return l.length
}

func (l *List[V]) IsEmpty() bool {
	return l.front == nil
}

func (l *List[V]) Order() Order {
	return l.order
}

// First returns the value at the front of the list.
func (l *List[V]) First() (V, error) {
	if l.front == nil {
		var zero V
		return zero, ErrEmptyCollection
	}
	return l.front.value, nil
}

// Last returns the value at the back of the list.
func (l *List[V]) Last() (V, error) {
	if l.back == nil {
		var zero V
		return zero, ErrEmptyCollection
	}
	return l.back.value, nil
}

func (l *List[V]) TryFirst() (v V, ok bool) {
	if l.front == nil {
		return
	}
	return l.front.value, true
}

func (l *List[V]) TryLast() (v V, ok bool) {
	if l.back == nil {
		return
	}
	return l.back.value, true
}

// Min returns the smallest value regardless of the list order.
func (l *List[V]) Min() (V, error) {
	if l.order == Descending {
		return l.Last()
	}
	return l.First()
}

// Max returns the largest value regardless of the list order.
func (l *List[V]) Max() (V, error) {
	if l.order == Descending {
		return l.First()
	}
	return l.Last()
}

func (l *List[V]) TryMin() (V, bool) {
	if l.order == Descending {
		return l.TryLast()
	}
	return l.TryFirst()
}

func (l *List[V]) TryMax() (V, bool) {
	if l.order == Descending {
		return l.TryFirst()
	}
	return l.TryLast()
}

// At returns the value at index i in O(min(i, len-i)).
func (l *List[V]) At(i int) (V, error) {
	if err := l.checkIndex(i); err != nil {
		var zero V
		return zero, err
	}
	return l.at(i).value, nil
}

func (l *List[V]) TryAt(i int) (v V, ok bool) {
	if i < 0 || i >= l.length {
		return
	}
	return l.at(i).value, true
}

// All yields the values front to back. Each call starts a new walk.
func (l *List[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for e := l.front; e != nil; e = e.next {
			if !yield(e.value) {
				return
			}
		}
	}
}

// Backward yields the values back to front.
func (l *List[V]) Backward() iter.Seq[V] {
	return func(yield func(V) bool) {
		for e := l.back; e != nil; e = e.prev {
			if !yield(e.value) {
				return
			}
		}
	}
}

// Values returns a copy of the values in list order.
func (l *List[V]) Values() []V {
	s := make([]V, 0, l.length)
	for e := l.front; e != nil; e = e.next {
		s = append(s, e.value)
	}
	return s
}

// valuesIn returns the values arranged in order o.
func (l *List[V]) valuesIn(o Order) []V {
	if o == l.order {
		return l.Values()
	}
	return slices.Collect(l.Backward())
}

// Clear drops every element.
func (l *List[V]) Clear() {
	l.front = nil
	l.back = nil
	l.length = 0
	l.invalidate()
}

// Clone returns a deep copy with the same order.
func (l *List[V]) Clone() *List[V] {
	return fromSorted(l.Values(), l.order)
}

// Equal reports whether both lists have the same order and values.
func (l *List[V]) Equal(other *List[V]) bool {
	if l == other {
		return true
	}
	if other == nil || l.order != other.order || l.length != other.length {
		return false
	}
	for a, b := l.front, other.front; a != nil; a, b = a.next, b.next {
		if !l.equal(a.value, b.value) {
			return false
		}
	}
	return true
}

func (l *List[V]) String() string {
	return fmt.Sprint(l.Values())
}
