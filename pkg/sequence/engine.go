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

package sequence

import (
	"fmt"
	"iter"

	"github.com/pmkol/seqlist/pkg/sorted_list"
)

type scalar interface {
	int64 | string
}

// engine is the kind-erased view of a sorted_list.List. Values cross it as
// any and are checked against the element kind before anything is mutated.
type engine interface {
	order() Order
	length() int
	first() (any, error)
	last() (any, error)
	tryFirst() (any, bool)
	tryLast() (any, bool)
	min() (any, error)
	max() (any, error)
	at(i int) (any, error)
	tryAt(i int) (any, bool)
	values() []any
	all() iter.Seq[any]
	backward() iter.Seq[any]

	add(v any) error
	addAll(vs []any) error
	mergeValues(vs []any) error
	remove(v any) (bool, error)
	removeEvery(v any) (int, error)
	removeAll(vs []any) (int, error)
	removeAllEvery(vs []any) (int, error)
	removeAt(i int) (any, error)
	removeFirst(n int) ([]any, error)
	removeLast(n int) ([]any, error)
	clear()
	reverse()
	unique()
	filter(pred func(any) bool)

	clone() engine
	merge(o engine) error
	union(o engine) engine
	unionWithDuplicates(o engine) engine
	intersect(o engine) engine
	diff(o engine) engine
	equal(o engine) bool

	contains(v any) (bool, error)
	indexOf(v any) (int, error)
	lastIndexOf(v any) (int, error)
	count(v any) (int, error)
	greaterThan(v any) (engine, error)
	lessThan(v any) (engine, error)
	between(lo, hi any) (engine, error)
	slice(start, end int) (engine, error)
	find(pred func(any) bool) (any, bool)
	findLast(pred func(any) bool) (any, bool)
	findAll(pred func(any) bool) engine

	sum() (int64, error)
	validate() error
	String() string
}

type typed[V scalar] struct {
	kind Kind
	l    *sorted_list.List[V]
	conv func(any) (V, bool)
}

func newInts(l *sorted_list.List[int64]) *typed[int64] {
	return &typed[int64]{kind: KindInt, l: l, conv: toInt}
}

func newTexts(l *sorted_list.List[string]) *typed[string] {
	return &typed[string]{kind: KindText, l: l, conv: toText}
}

func (t *typed[V]) wrap(l *sorted_list.List[V]) engine {
	return &typed[V]{kind: t.kind, l: l, conv: t.conv}
}

func (t *typed[V]) check(v any) (V, error) {
	x, ok := t.conv(v)
	if !ok {
		return x, fmt.Errorf("%w: %v (%T) is not %s", ErrTypeMismatch, v, v, t.kind)
	}
	return x, nil
}

// checkAll converts every value before the caller commits anything, so a
// bad element anywhere leaves the list untouched.
func (t *typed[V]) checkAll(vs []any) ([]V, error) {
	out := make([]V, len(vs))
	for i, v := range vs {
		x, ok := t.conv(v)
		if !ok {
			return nil, fmt.Errorf("%w: element %d, %v (%T) is not %s", ErrTypeMismatch, i, v, v, t.kind)
		}
		out[i] = x
	}
	return out, nil
}

func boxAll[V scalar](s []V) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func boxed[V scalar](v V, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func boxedOK[V scalar](v V, ok bool) (any, bool) {
	if !ok {
		return nil, false
	}
	return v, true
}

func (t *typed[V]) pred(pred func(any) bool) func(V) bool {
	return func(v V) bool { return pred(v) }
}

func (t *typed[V]) peer(o engine) *typed[V] {
	return o.(*typed[V])
}

func (t *typed[V]) order() Order    { return t.l.Order() }
func (t *typed[V]) length() int     { return t.l.Len() }
func (t *typed[V]) values() []any   { return boxAll(t.l.Values()) }
func (t *typed[V]) clear()          { t.l.Clear() }
func (t *typed[V]) reverse()        { t.l.Reverse() }
func (t *typed[V]) unique()         { t.l.Unique() }
func (t *typed[V]) validate() error { return t.l.Validate() }
func (t *typed[V]) String() string  { return t.l.String() }

func (t *typed[V]) first() (any, error) {
	v, err := t.l.First()
	return boxed(v, err)
}

func (t *typed[V]) last() (any, error) {
	v, err := t.l.Last()
	return boxed(v, err)
}

func (t *typed[V]) min() (any, error) {
	v, err := t.l.Min()
	return boxed(v, err)
}

func (t *typed[V]) max() (any, error) {
	v, err := t.l.Max()
	return boxed(v, err)
}

func (t *typed[V]) at(i int) (any, error) {
	v, err := t.l.At(i)
	return boxed(v, err)
}

func (t *typed[V]) tryFirst() (any, bool) {
	v, ok := t.l.TryFirst()
	return boxedOK(v, ok)
}

func (t *typed[V]) tryLast() (any, bool) {
	v, ok := t.l.TryLast()
	return boxedOK(v, ok)
}

func (t *typed[V]) tryAt(i int) (any, bool) {
	v, ok := t.l.TryAt(i)
	return boxedOK(v, ok)
}

func (t *typed[V]) all() iter.Seq[any] {
	return func(yield func(any) bool) {
		for v := range t.l.All() {
			if !yield(v) {
				return
			}
		}
	}
}

func (t *typed[V]) backward() iter.Seq[any] {
	return func(yield func(any) bool) {
		for v := range t.l.Backward() {
			if !yield(v) {
				return
			}
		}
	}
}

func (t *typed[V]) add(v any) error {
	x, err := t.check(v)
	if err != nil {
		return err
	}
	t.l.Add(x)
	return nil
}

func (t *typed[V]) addAll(vs []any) error {
	xs, err := t.checkAll(vs)
	if err != nil {
		return err
	}
	t.l.AddAll(xs)
	return nil
}

func (t *typed[V]) mergeValues(vs []any) error {
	xs, err := t.checkAll(vs)
	if err != nil {
		return err
	}
	t.l.MergeSeq(func(yield func(V) bool) {
		for _, x := range xs {
			if !yield(x) {
				return
			}
		}
	})
	return nil
}

func (t *typed[V]) remove(v any) (bool, error) {
	x, err := t.check(v)
	if err != nil {
		return false, err
	}
	return t.l.Remove(x), nil
}

func (t *typed[V]) removeEvery(v any) (int, error) {
	x, err := t.check(v)
	if err != nil {
		return 0, err
	}
	return t.l.RemoveEveryOccurrence(x), nil
}

func (t *typed[V]) removeAll(vs []any) (int, error) {
	xs, err := t.checkAll(vs)
	if err != nil {
		return 0, err
	}
	return t.l.RemoveAll(xs), nil
}

func (t *typed[V]) removeAllEvery(vs []any) (int, error) {
	xs, err := t.checkAll(vs)
	if err != nil {
		return 0, err
	}
	return t.l.RemoveAllAndEveryOccurrence(xs), nil
}

func (t *typed[V]) removeAt(i int) (any, error) {
	v, err := t.l.RemoveAt(i)
	return boxed(v, err)
}

func (t *typed[V]) removeFirst(n int) ([]any, error) {
	s, err := t.l.RemoveFirst(n)
	if err != nil {
		return nil, err
	}
	return boxAll(s), nil
}

func (t *typed[V]) removeLast(n int) ([]any, error) {
	s, err := t.l.RemoveLast(n)
	if err != nil {
		return nil, err
	}
	return boxAll(s), nil
}

func (t *typed[V]) filter(pred func(any) bool) {
	t.l.Filter(t.pred(pred))
}

func (t *typed[V]) clone() engine {
	return t.wrap(t.l.Clone())
}

func (t *typed[V]) merge(o engine) error {
	return t.l.Merge(t.peer(o).l)
}

func (t *typed[V]) union(o engine) engine {
	return t.wrap(t.l.Union(t.peer(o).l))
}

func (t *typed[V]) unionWithDuplicates(o engine) engine {
	return t.wrap(t.l.UnionWithDuplicates(t.peer(o).l))
}

func (t *typed[V]) intersect(o engine) engine {
	return t.wrap(t.l.Intersect(t.peer(o).l))
}

func (t *typed[V]) diff(o engine) engine {
	return t.wrap(t.l.Diff(t.peer(o).l))
}

func (t *typed[V]) equal(o engine) bool {
	p, ok := o.(*typed[V])
	return ok && t.l.Equal(p.l)
}

func (t *typed[V]) contains(v any) (bool, error) {
	x, err := t.check(v)
	if err != nil {
		return false, err
	}
	return t.l.Contains(x), nil
}

func (t *typed[V]) indexOf(v any) (int, error) {
	x, err := t.check(v)
	if err != nil {
		return -1, err
	}
	return t.l.IndexOf(x), nil
}

func (t *typed[V]) lastIndexOf(v any) (int, error) {
	x, err := t.check(v)
	if err != nil {
		return -1, err
	}
	return t.l.LastIndexOf(x), nil
}

func (t *typed[V]) count(v any) (int, error) {
	x, err := t.check(v)
	if err != nil {
		return 0, err
	}
	return t.l.Count(x), nil
}

func (t *typed[V]) greaterThan(v any) (engine, error) {
	x, err := t.check(v)
	if err != nil {
		return nil, err
	}
	return t.wrap(t.l.GreaterThan(x)), nil
}

func (t *typed[V]) lessThan(v any) (engine, error) {
	x, err := t.check(v)
	if err != nil {
		return nil, err
	}
	return t.wrap(t.l.LessThan(x)), nil
}

func (t *typed[V]) between(lo, hi any) (engine, error) {
	x, err := t.check(lo)
	if err != nil {
		return nil, err
	}
	y, err := t.check(hi)
	if err != nil {
		return nil, err
	}
	return t.wrap(t.l.Range(x, y)), nil
}

func (t *typed[V]) slice(start, end int) (engine, error) {
	l, err := t.l.Slice(start, end)
	if err != nil {
		return nil, err
	}
	return t.wrap(l), nil
}

func (t *typed[V]) find(pred func(any) bool) (any, bool) {
	v, ok := t.l.Find(t.pred(pred))
	return boxedOK(v, ok)
}

func (t *typed[V]) findLast(pred func(any) bool) (any, bool) {
	v, ok := t.l.FindLast(t.pred(pred))
	return boxedOK(v, ok)
}

func (t *typed[V]) findAll(pred func(any) bool) engine {
	return t.wrap(t.l.FindAll(t.pred(pred)))
}

func (t *typed[V]) sum() (int64, error) {
	ints, ok := any(t.l).(*sorted_list.List[int64])
	if !ok {
		return 0, fmt.Errorf("%w: cannot sum %s elements", ErrTypeMismatch, t.kind)
	}
	return sorted_list.Sum(ints)
}
