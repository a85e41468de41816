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

// Package sequence wraps sorted_list with a runtime element type tag, so
// callers that only know their values at runtime (config files, HTTP
// bodies, scripts) get TypeMismatch errors instead of silent coercion.
package sequence

import (
	"fmt"
	"iter"

	"github.com/pmkol/seqlist/pkg/sorted_list"
)

type Order = sorted_list.Order

const (
	Ascending  = sorted_list.Ascending
	Descending = sorted_list.Descending
)

// Seq is a sorted sequence of either int64 or string values.
// Like the list it wraps, a Seq is not safe for concurrent use.
type Seq struct {
	kind Kind
	e    engine
}

func ForInts(o Order) *Seq {
	return FromIntList(sorted_list.New[int64](o))
}

func ForTexts(o Order) *Seq {
	return FromTextList(sorted_list.New[string](o))
}

// New returns an empty Seq for kind k.
func New(k Kind, o Order) (*Seq, error) {
	switch k {
	case KindInt:
		return ForInts(o), nil
	case KindText:
		return ForTexts(o), nil
	}
	return nil, fmt.Errorf("invalid element type %s", k)
}

func FromInts(values []int64, o Order) *Seq {
	return FromIntList(sorted_list.FromSlice(values, o))
}

func FromTexts(values []string, o Order) *Seq {
	return FromTextList(sorted_list.FromSlice(values, o))
}

// FromIntList wraps l without copying it. l must not be used directly
// afterwards.
func FromIntList(l *sorted_list.List[int64]) *Seq {
	return &Seq{kind: KindInt, e: newInts(l)}
}

// FromTextList wraps l without copying it.
func FromTextList(l *sorted_list.List[string]) *Seq {
	return &Seq{kind: KindText, e: newTexts(l)}
}

// FromValues builds a Seq whose kind is inferred from the first value.
// Every value must share that kind.
func FromValues(values []any, o Order) (*Seq, error) {
	if len(values) == 0 {
		return nil, ErrEmptySource
	}
	k, ok := KindOf(values[0])
	if !ok {
		return nil, fmt.Errorf("%w: %v (%T) is neither int nor text", ErrTypeMismatch, values[0], values[0])
	}
	s, err := New(k, o)
	if err != nil {
		return nil, err
	}
	if err := s.e.mergeValues(values); err != nil {
		return nil, err
	}
	return s, nil
}

// FromSeq drains src and builds a Seq like FromValues.
func FromSeq(src iter.Seq[any], o Order) (*Seq, error) {
	var values []any
	for v := range src {
		values = append(values, v)
	}
	return FromValues(values, o)
}

func (s *Seq) Kind() Kind {
	return s.kind
}

func (s *Seq) Order() Order {
	return s.e.order()
}

func (s *Seq) Len() int {
	return s.e.length()
}

func (s *Seq) IsEmpty() bool {
	return s.e.length() == 0
}

// Ints returns the underlying list when s holds ints, or nil.
func (s *Seq) Ints() *sorted_list.List[int64] {
	if t, ok := s.e.(*typed[int64]); ok {
		return t.l
	}
	return nil
}

// Texts returns the underlying list when s holds text, or nil.
func (s *Seq) Texts() *sorted_list.List[string] {
	if t, ok := s.e.(*typed[string]); ok {
		return t.l
	}
	return nil
}

func (s *Seq) wrap(e engine) *Seq {
	return &Seq{kind: s.kind, e: e}
}

// sameKind rejects operands of another kind before any cross-list work.
func (s *Seq) sameKind(op string, o *Seq) error {
	if o == nil {
		return fmt.Errorf("%s: nil sequence", op)
	}
	if o.kind != s.kind {
		return fmt.Errorf("%w: %s of %s and %s sequences", ErrTypeMismatch, op, s.kind, o.kind)
	}
	return nil
}

func (s *Seq) First() (any, error)     { return s.e.first() }
func (s *Seq) Last() (any, error)      { return s.e.last() }
func (s *Seq) TryFirst() (any, bool)   { return s.e.tryFirst() }
func (s *Seq) TryLast() (any, bool)    { return s.e.tryLast() }
func (s *Seq) Min() (any, error)       { return s.e.min() }
func (s *Seq) Max() (any, error)       { return s.e.max() }
func (s *Seq) At(i int) (any, error)   { return s.e.at(i) }
func (s *Seq) TryAt(i int) (any, bool) { return s.e.tryAt(i) }
func (s *Seq) Values() []any           { return s.e.values() }
func (s *Seq) All() iter.Seq[any]      { return s.e.all() }
func (s *Seq) Backward() iter.Seq[any] { return s.e.backward() }
func (s *Seq) String() string          { return s.e.String() }

// Validate checks the structural invariants of the underlying list.
func (s *Seq) Validate() error { return s.e.validate() }

// Add inserts v, which must match the sequence kind.
func (s *Seq) Add(v any) error {
	return s.e.add(v)
}

// AddAll inserts every value, or none of them if any has the wrong kind.
func (s *Seq) AddAll(values []any) error {
	return s.e.addAll(values)
}

func (s *Seq) Remove(v any) (bool, error) {
	return s.e.remove(v)
}

func (s *Seq) RemoveEveryOccurrence(v any) (int, error) {
	return s.e.removeEvery(v)
}

func (s *Seq) RemoveAll(values []any) (int, error) {
	return s.e.removeAll(values)
}

func (s *Seq) RemoveAllAndEveryOccurrence(values []any) (int, error) {
	return s.e.removeAllEvery(values)
}

func (s *Seq) RemoveAt(i int) (any, error) {
	return s.e.removeAt(i)
}

func (s *Seq) RemoveFirst(n int) ([]any, error) {
	return s.e.removeFirst(n)
}

func (s *Seq) RemoveLast(n int) ([]any, error) {
	return s.e.removeLast(n)
}

func (s *Seq) Clear() {
	s.e.clear()
}

func (s *Seq) Reverse() {
	s.e.reverse()
}

// Unique drops duplicates in place and returns s.
func (s *Seq) Unique() *Seq {
	s.e.unique()
	return s
}

// Filter keeps the values matching pred in place and returns s.
func (s *Seq) Filter(pred func(any) bool) *Seq {
	s.e.filter(pred)
	return s
}

func (s *Seq) Clone() *Seq {
	return s.wrap(s.e.clone())
}

// Equal reports whether o has the same kind, order and values.
func (s *Seq) Equal(o *Seq) bool {
	return o != nil && s.kind == o.kind && s.e.equal(o.e)
}

// Merge moves every element of o into s and leaves o empty.
func (s *Seq) Merge(o *Seq) error {
	if err := s.sameKind("merge", o); err != nil {
		return err
	}
	return s.e.merge(o.e)
}

func (s *Seq) Union(o *Seq) (*Seq, error) {
	if err := s.sameKind("union", o); err != nil {
		return nil, err
	}
	return s.wrap(s.e.union(o.e)), nil
}

func (s *Seq) UnionWithDuplicates(o *Seq) (*Seq, error) {
	if err := s.sameKind("union", o); err != nil {
		return nil, err
	}
	return s.wrap(s.e.unionWithDuplicates(o.e)), nil
}

func (s *Seq) Intersect(o *Seq) (*Seq, error) {
	if err := s.sameKind("intersect", o); err != nil {
		return nil, err
	}
	return s.wrap(s.e.intersect(o.e)), nil
}

func (s *Seq) Diff(o *Seq) (*Seq, error) {
	if err := s.sameKind("diff", o); err != nil {
		return nil, err
	}
	return s.wrap(s.e.diff(o.e)), nil
}

func (s *Seq) Contains(v any) (bool, error) {
	return s.e.contains(v)
}

func (s *Seq) IndexOf(v any) (int, error) {
	return s.e.indexOf(v)
}

func (s *Seq) LastIndexOf(v any) (int, error) {
	return s.e.lastIndexOf(v)
}

func (s *Seq) Count(v any) (int, error) {
	return s.e.count(v)
}

func (s *Seq) GreaterThan(v any) (*Seq, error) {
	e, err := s.e.greaterThan(v)
	if err != nil {
		return nil, err
	}
	return s.wrap(e), nil
}

func (s *Seq) LessThan(v any) (*Seq, error) {
	e, err := s.e.lessThan(v)
	if err != nil {
		return nil, err
	}
	return s.wrap(e), nil
}

// Range returns the values in [lo, hi] by natural ordering.
func (s *Seq) Range(lo, hi any) (*Seq, error) {
	e, err := s.e.between(lo, hi)
	if err != nil {
		return nil, err
	}
	return s.wrap(e), nil
}

func (s *Seq) Slice(start, end int) (*Seq, error) {
	e, err := s.e.slice(start, end)
	if err != nil {
		return nil, err
	}
	return s.wrap(e), nil
}

func (s *Seq) Find(pred func(any) bool) (any, bool) {
	return s.e.find(pred)
}

func (s *Seq) FindLast(pred func(any) bool) (any, bool) {
	return s.e.findLast(pred)
}

func (s *Seq) FindAll(pred func(any) bool) *Seq {
	return s.wrap(s.e.findAll(pred))
}

// Sum adds every int value. Text sequences fail with ErrTypeMismatch and
// overflow fails with ErrOverflow.
func (s *Seq) Sum() (int64, error) {
	return s.e.sum()
}

// ParseOrder accepts "asc", "ascending", "desc" and "descending".
func ParseOrder(s string) (Order, error) {
	return sorted_list.ParseOrder(s)
}
