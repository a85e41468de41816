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
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustValues(t *testing.T, s *Seq, want ...any) {
	t.Helper()
	require.NoError(t, s.Validate())
	if want == nil {
		want = []any{}
	}
	assert.Equal(t, want, s.Values())
	assert.Equal(t, len(want), s.Len())
}

func TestSeqAdd(t *testing.T) {
	s := ForInts(Ascending)
	for _, v := range []any{5, 2, int64(8), int8(1), uint16(3)} {
		require.NoError(t, s.Add(v))
	}
	mustValues(t, s, int64(1), int64(2), int64(3), int64(5), int64(8))

	assert.ErrorIs(t, s.Add("9"), ErrTypeMismatch)
	assert.ErrorIs(t, s.Add(1.5), ErrTypeMismatch)
	assert.ErrorIs(t, s.Add(true), ErrTypeMismatch)
	assert.ErrorIs(t, s.Add(uint64(1<<63)), ErrTypeMismatch)
	assert.Equal(t, 5, s.Len())

	txt := ForTexts(Descending)
	require.NoError(t, txt.Add("b"))
	require.NoError(t, txt.Add("c"))
	assert.ErrorIs(t, txt.Add(1), ErrTypeMismatch)
	mustValues(t, txt, "c", "b")
}

func TestSeqAddAllIsAtomic(t *testing.T) {
	s := FromInts([]int64{1, 2}, Ascending)
	err := s.AddAll([]any{3, 4, "five", 6})
	require.ErrorIs(t, err, ErrTypeMismatch)
	assert.Contains(t, err.Error(), "element 2")
	mustValues(t, s, int64(1), int64(2))

	_, err = s.RemoveAll([]any{1, "x"})
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = s.RemoveAllAndEveryOccurrence([]any{"x", 1})
	assert.ErrorIs(t, err, ErrTypeMismatch)
	mustValues(t, s, int64(1), int64(2))

	require.NoError(t, s.AddAll([]any{4, 3, 2}))
	mustValues(t, s, int64(1), int64(2), int64(2), int64(3), int64(4))
}

func TestSeqConstruction(t *testing.T) {
	t.Run("from values", func(t *testing.T) {
		s, err := FromValues([]any{3, 1, 3, 2, 1}, Ascending)
		require.NoError(t, err)
		assert.Equal(t, KindInt, s.Kind())
		mustValues(t, s, int64(1), int64(1), int64(2), int64(3), int64(3))

		s, err = FromValues([]any{"b", "a"}, Descending)
		require.NoError(t, err)
		assert.Equal(t, KindText, s.Kind())
		mustValues(t, s, "b", "a")
	})

	t.Run("empty source", func(t *testing.T) {
		_, err := FromValues(nil, Ascending)
		assert.ErrorIs(t, err, ErrEmptySource)
		_, err = FromSeq(slices.Values([]any{}), Ascending)
		assert.ErrorIs(t, err, ErrEmptySource)
	})

	t.Run("mixed source", func(t *testing.T) {
		_, err := FromValues([]any{1, "a"}, Ascending)
		assert.ErrorIs(t, err, ErrTypeMismatch)
		_, err = FromValues([]any{1.5}, Ascending)
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("from seq", func(t *testing.T) {
		s, err := FromSeq(slices.Values([]any{"x", "z", "y"}), Ascending)
		require.NoError(t, err)
		mustValues(t, s, "x", "y", "z")
	})

	t.Run("new", func(t *testing.T) {
		s, err := New(KindText, Ascending)
		require.NoError(t, err)
		assert.True(t, s.IsEmpty())
		_, err = New(Kind(9), Ascending)
		assert.Error(t, err)
	})

	t.Run("typed access", func(t *testing.T) {
		s := FromInts([]int64{2, 1}, Ascending)
		require.NotNil(t, s.Ints())
		assert.Nil(t, s.Texts())
		s.Ints().Add(0)
		mustValues(t, s, int64(0), int64(1), int64(2))
	})
}

func TestSeqRemoveAt(t *testing.T) {
	s := FromInts([]int64{1, 2, 3}, Ascending)
	_, err := s.RemoveAt(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = s.RemoveAt(99)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	v, err := s.RemoveAt(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	first, err := s.RemoveFirst(1)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1)}, first)
	last, err := s.RemoveLast(5)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(3)}, last)

	_, err = s.First()
	assert.ErrorIs(t, err, ErrEmptyCollection)
	v, ok := s.TryFirst()
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestSeqMerge(t *testing.T) {
	a := FromInts([]int64{1, 3, 5}, Ascending)
	b := FromInts([]int64{2, 4, 6}, Ascending)
	require.NoError(t, a.Merge(b))
	mustValues(t, a, int64(1), int64(2), int64(3), int64(4), int64(5), int64(6))
	mustValues(t, b)

	assert.ErrorIs(t, a.Merge(FromTexts([]string{"a"}, Ascending)), ErrTypeMismatch)
	assert.ErrorIs(t, a.Merge(FromInts([]int64{1}, Descending)), ErrDirectionMismatch)
	assert.Error(t, a.Merge(nil))
	assert.Equal(t, 6, a.Len())
}

func TestSeqSetOps(t *testing.T) {
	a := FromInts([]int64{1, 2, 3}, Ascending)
	b := FromInts([]int64{2, 3, 4}, Ascending)

	u, err := a.Union(b)
	require.NoError(t, err)
	mustValues(t, u, int64(1), int64(2), int64(3), int64(4))

	u, err = a.UnionWithDuplicates(b)
	require.NoError(t, err)
	mustValues(t, u, int64(1), int64(2), int64(2), int64(3), int64(3), int64(4))

	i, err := a.Intersect(b)
	require.NoError(t, err)
	mustValues(t, i, int64(2), int64(3))

	d, err := a.Diff(b)
	require.NoError(t, err)
	mustValues(t, d, int64(1))

	txt := FromTexts([]string{"a"}, Ascending)
	_, err = a.Union(txt)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = a.Intersect(txt)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = a.Diff(txt)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	dup := FromTexts([]string{"a", "b", "a"}, Ascending)
	assert.Same(t, dup, dup.Unique())
	mustValues(t, dup, "a", "b")
}

func TestSeqQueries(t *testing.T) {
	s := FromInts([]int64{1, 2, 3, 4, 5}, Ascending)

	gt, err := s.GreaterThan(3)
	require.NoError(t, err)
	mustValues(t, gt, int64(4), int64(5))
	lt, err := s.LessThan(3)
	require.NoError(t, err)
	mustValues(t, lt, int64(1), int64(2))
	_, err = s.GreaterThan("3")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	r, err := s.Range(2, 3)
	require.NoError(t, err)
	mustValues(t, r, int64(2), int64(3))
	_, err = s.Range(2, "3")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	sl, err := s.Slice(3, 5)
	require.NoError(t, err)
	mustValues(t, sl, int64(4), int64(5))
	_, err = s.Slice(3, 6)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	ok, err := s.Contains(4)
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = s.Contains("4")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	idx, err := s.IndexOf(5)
	require.NoError(t, err)
	assert.Equal(t, 4, idx)
	idx, err = s.LastIndexOf(6)
	require.NoError(t, err)
	assert.Equal(t, -1, idx)
	n, err := s.Count(1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	even := func(v any) bool { return v.(int64)%2 == 0 }
	v, found := s.Find(even)
	assert.True(t, found)
	assert.Equal(t, int64(2), v)
	v, found = s.FindLast(even)
	assert.True(t, found)
	assert.Equal(t, int64(4), v)
	mustValues(t, s.FindAll(even), int64(2), int64(4))

	c := s.Clone()
	assert.True(t, c.Equal(s))
	c.Filter(even)
	mustValues(t, c, int64(2), int64(4))
	assert.False(t, c.Equal(s))

	lo, err := s.Min()
	require.NoError(t, err)
	hi, err := s.Max()
	require.NoError(t, err)
	assert.Equal(t, int64(1), lo)
	assert.Equal(t, int64(5), hi)
	at, err := s.At(2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), at)
	_, ok = s.TryAt(5)
	assert.False(t, ok)
}

func TestSeqReverseAndIterate(t *testing.T) {
	s := FromTexts([]string{"b", "a", "c"}, Ascending)
	s.Reverse()
	assert.Equal(t, Descending, s.Order())
	mustValues(t, s, "c", "b", "a")

	var b strings.Builder
	for v := range s.Backward() {
		b.WriteString(v.(string))
	}
	assert.Equal(t, "abc", b.String())
	assert.Equal(t, []any{"c", "b", "a"}, slices.Collect(s.All()))
	assert.Equal(t, "[c b a]", s.String())

	s.Clear()
	assert.True(t, s.IsEmpty())
}

func TestSeqSum(t *testing.T) {
	s := FromInts([]int64{1, 2, 3}, Ascending)
	sum, err := s.Sum()
	require.NoError(t, err)
	assert.Equal(t, int64(6), sum)

	_, err = FromTexts([]string{"a"}, Ascending).Sum()
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = FromInts([]int64{1 << 62, 1 << 62}, Ascending).Sum()
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestKind(t *testing.T) {
	for in, want := range map[string]Kind{"int": KindInt, "Integer": KindInt, "number": KindInt, "text": KindText, "STRING": KindText} {
		k, err := ParseKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, k)
	}
	_, err := ParseKind("float")
	assert.Error(t, err)

	k, ok := KindOf(uint32(1))
	assert.True(t, ok)
	assert.Equal(t, KindInt, k)
	_, ok = KindOf(2.0)
	assert.False(t, ok)
	assert.Equal(t, "text", KindText.String())
}
