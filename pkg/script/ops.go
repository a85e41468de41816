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

package script

import (
	"fmt"

	"github.com/pmkol/seqlist/pkg/seq_store"
	"github.com/pmkol/seqlist/pkg/sequence"
)

type ValueArgs struct {
	Value any `yaml:"value"`
}

type ValuesArgs struct {
	Values []any `yaml:"values"`
}

type IndexArgs struct {
	Index int `yaml:"index"`
}

type CountArgs struct {
	N int `yaml:"n"`
}

type WithArgs struct {
	With string `yaml:"with"`
}

type OfArgs struct {
	Of []string `yaml:"of"`
}

type ExprArgs struct {
	From string `yaml:"from"`
	Expr string `yaml:"expr"`
}

type BoundArgs struct {
	From  string `yaml:"from"`
	Value any    `yaml:"value"`
}

type RangeArgs struct {
	From string `yaml:"from"`
	Lo   any    `yaml:"lo"`
	Hi   any    `yaml:"hi"`
}

type SliceArgs struct {
	From  string `yaml:"from"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
}

func init() {
	RegOp("add", opAdd, func() any { return new(ValueArgs) })
	RegOp("add_all", opAddAll, func() any { return new(ValuesArgs) })
	RegOp("remove", opRemove, func() any { return new(ValueArgs) })
	RegOp("remove_every", opRemoveEvery, func() any { return new(ValueArgs) })
	RegOp("remove_all", opRemoveAll, func() any { return new(ValuesArgs) })
	RegOp("remove_all_every", opRemoveAllEvery, func() any { return new(ValuesArgs) })
	RegOp("remove_at", opRemoveAt, func() any { return new(IndexArgs) })
	RegOp("remove_first", opRemoveFirst, func() any { return new(CountArgs) })
	RegOp("remove_last", opRemoveLast, func() any { return new(CountArgs) })
	RegOp("clear", opClear, nil)
	RegOp("reverse", opReverse, nil)
	RegOp("unique", opUnique, nil)
	RegOp("merge", opMerge, func() any { return new(WithArgs) })
	RegOp("union", setOp((*sequence.Seq).Union), func() any { return new(OfArgs) })
	RegOp("union_dup", setOp((*sequence.Seq).UnionWithDuplicates), func() any { return new(OfArgs) })
	RegOp("intersect", setOp((*sequence.Seq).Intersect), func() any { return new(OfArgs) })
	RegOp("diff", setOp((*sequence.Seq).Diff), func() any { return new(OfArgs) })
	RegOp("filter", opFilter, func() any { return new(ExprArgs) })
	RegOp("find_all", opFindAll, func() any { return new(ExprArgs) })
	RegOp("count_if", opCountIf, func() any { return new(ExprArgs) })
	RegOp("greater_than", boundOp((*sequence.Seq).GreaterThan), func() any { return new(BoundArgs) })
	RegOp("less_than", boundOp((*sequence.Seq).LessThan), func() any { return new(BoundArgs) })
	RegOp("range", opRange, func() any { return new(RangeArgs) })
	RegOp("slice", opSlice, func() any { return new(SliceArgs) })
	RegOp("print", opPrint, nil)
	RegOp("sum", opSum, nil)
	RegOp("contains", opContains, func() any { return new(ValueArgs) })
	RegOp("index_of", opIndexOf, func() any { return new(ValueArgs) })
}

func opAdd(c *Context, args any) error {
	v := args.(*ValueArgs).Value
	return c.Do(func(s *sequence.Seq) error { return s.Add(v) })
}

func opAddAll(c *Context, args any) error {
	values := args.(*ValuesArgs).Values
	return c.Do(func(s *sequence.Seq) error { return s.AddAll(values) })
}

func opRemove(c *Context, args any) error {
	v := args.(*ValueArgs).Value
	var removed bool
	err := c.Do(func(s *sequence.Seq) (err error) {
		removed, err = s.Remove(v)
		return err
	})
	if err != nil {
		return err
	}
	return c.Emit(removed)
}

func opRemoveEvery(c *Context, args any) error {
	v := args.(*ValueArgs).Value
	var n int
	err := c.Do(func(s *sequence.Seq) (err error) {
		n, err = s.RemoveEveryOccurrence(v)
		return err
	})
	if err != nil {
		return err
	}
	return c.Emit(n)
}

func opRemoveAll(c *Context, args any) error {
	values := args.(*ValuesArgs).Values
	var n int
	err := c.Do(func(s *sequence.Seq) (err error) {
		n, err = s.RemoveAll(values)
		return err
	})
	if err != nil {
		return err
	}
	return c.Emit(n)
}

func opRemoveAllEvery(c *Context, args any) error {
	values := args.(*ValuesArgs).Values
	var n int
	err := c.Do(func(s *sequence.Seq) (err error) {
		n, err = s.RemoveAllAndEveryOccurrence(values)
		return err
	})
	if err != nil {
		return err
	}
	return c.Emit(n)
}

func opRemoveAt(c *Context, args any) error {
	i := args.(*IndexArgs).Index
	var v any
	err := c.Do(func(s *sequence.Seq) (err error) {
		v, err = s.RemoveAt(i)
		return err
	})
	if err != nil {
		return err
	}
	return c.Emit(v)
}

func opRemoveFirst(c *Context, args any) error {
	n := args.(*CountArgs).N
	var removed []any
	err := c.Do(func(s *sequence.Seq) (err error) {
		removed, err = s.RemoveFirst(n)
		return err
	})
	if err != nil {
		return err
	}
	return c.Emit(removed)
}

func opRemoveLast(c *Context, args any) error {
	n := args.(*CountArgs).N
	var removed []any
	err := c.Do(func(s *sequence.Seq) (err error) {
		removed, err = s.RemoveLast(n)
		return err
	})
	if err != nil {
		return err
	}
	return c.Emit(removed)
}

func opClear(c *Context, _ any) error {
	return c.Do(func(s *sequence.Seq) error {
		s.Clear()
		return nil
	})
}

func opReverse(c *Context, _ any) error {
	return c.Do(func(s *sequence.Seq) error {
		s.Reverse()
		return nil
	})
}

func opUnique(c *Context, _ any) error {
	return c.Do(func(s *sequence.Seq) error {
		s.Unique()
		return nil
	})
}

// opMerge moves every element of the "with" sequence into the target.
func opMerge(c *Context, args any) error {
	with := args.(*WithArgs).With
	if len(with) == 0 {
		return fmt.Errorf("merge needs a with sequence")
	}
	return c.Store.Do2(c.Seq, with, func(dst, src *sequence.Seq) error {
		return dst.Merge(src)
	})
}

// setOp computes f(of[0], of[1]) and stores the result as the target.
func setOp(f func(a, b *sequence.Seq) (*sequence.Seq, error)) OpFunc {
	return func(c *Context, args any) error {
		of := args.(*OfArgs).Of
		if len(of) != 2 {
			return fmt.Errorf("%s needs exactly 2 sequences, got %d", c.Op, len(of))
		}
		var res *sequence.Seq
		err := c.Store.Do2(of[0], of[1], func(a, b *sequence.Seq) (err error) {
			res, err = f(a, b)
			return err
		})
		if err != nil {
			return err
		}
		c.Put(res)
		return nil
	}
}

// derive runs f on the source sequence and stores the result as the
// target.
func derive(c *Context, from string, f func(s *sequence.Seq) (*sequence.Seq, error)) error {
	var res *sequence.Seq
	err := c.Store.Do(c.Source(from), func(s *sequence.Seq) (err error) {
		res, err = f(s)
		return err
	})
	if err != nil {
		return err
	}
	c.Put(res)
	return nil
}

func boundOp(f func(s *sequence.Seq, v any) (*sequence.Seq, error)) OpFunc {
	return func(c *Context, args any) error {
		a := args.(*BoundArgs)
		return derive(c, a.From, func(s *sequence.Seq) (*sequence.Seq, error) {
			return f(s, a.Value)
		})
	}
}

func opRange(c *Context, args any) error {
	a := args.(*RangeArgs)
	return derive(c, a.From, func(s *sequence.Seq) (*sequence.Seq, error) {
		return s.Range(a.Lo, a.Hi)
	})
}

func opSlice(c *Context, args any) error {
	a := args.(*SliceArgs)
	return derive(c, a.From, func(s *sequence.Seq) (*sequence.Seq, error) {
		return s.Slice(a.Start, a.End)
	})
}

func opFindAll(c *Context, args any) error {
	a := args.(*ExprArgs)
	return derive(c, a.From, func(s *sequence.Seq) (*sequence.Seq, error) {
		p, err := newPredicate(a.Expr, s.Kind())
		if err != nil {
			return nil, err
		}
		res := s.FindAll(p.match)
		if p.err != nil {
			return nil, p.err
		}
		return res, nil
	})
}

// opFilter keeps the matching values of the target in place. The target is
// left untouched if the expression fails on any value.
func opFilter(c *Context, args any) error {
	a := args.(*ExprArgs)
	if len(a.From) > 0 {
		return fmt.Errorf("filter works in place and takes no from")
	}
	return c.Do(func(s *sequence.Seq) error {
		p, err := newPredicate(a.Expr, s.Kind())
		if err != nil {
			return err
		}
		kept := s.FindAll(p.match)
		if p.err != nil {
			return p.err
		}
		s.Clear()
		return s.Merge(kept)
	})
}

func opCountIf(c *Context, args any) error {
	a := args.(*ExprArgs)
	var n int
	err := c.Store.Do(c.Source(a.From), func(s *sequence.Seq) error {
		p, err := newPredicate(a.Expr, s.Kind())
		if err != nil {
			return err
		}
		n = s.FindAll(p.match).Len()
		return p.err
	})
	if err != nil {
		return err
	}
	return c.Emit(n)
}

func lookup(c *Context) (*seq_store.ConcurrentSeq, error) {
	cs, ok := c.Store.Get(c.Seq)
	if !ok {
		return nil, fmt.Errorf("%w: %s", seq_store.ErrNotFound, c.Seq)
	}
	return cs, nil
}

func opPrint(c *Context, _ any) error {
	cs, err := lookup(c)
	if err != nil {
		return err
	}
	return c.Emit(cs.Snapshot())
}

func opSum(c *Context, _ any) error {
	var sum int64
	err := c.Do(func(s *sequence.Seq) (err error) {
		sum, err = s.Sum()
		return err
	})
	if err != nil {
		return err
	}
	return c.Emit(sum)
}

func opContains(c *Context, args any) error {
	v := args.(*ValueArgs).Value
	var ok bool
	err := c.Do(func(s *sequence.Seq) (err error) {
		ok, err = s.Contains(v)
		return err
	})
	if err != nil {
		return err
	}
	return c.Emit(ok)
}

func opIndexOf(c *Context, args any) error {
	v := args.(*ValueArgs).Value
	var i int
	err := c.Do(func(s *sequence.Seq) (err error) {
		i, err = s.IndexOf(v)
		return err
	})
	if err != nil {
		return err
	}
	return c.Emit(i)
}
