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
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// model is a plain sorted slice the list is checked against.
type model struct {
	o Order
	s []int64
}

func (m *model) sort() {
	slices.SortStableFunc(m.s, func(a, b int64) int { return Compare(m.o, a, b) })
}

func (m *model) removeFirst(v int64) bool {
	i := slices.Index(m.s, v)
	if i < 0 {
		return false
	}
	m.s = slices.Delete(m.s, i, i+1)
	return true
}

func TestRandomOperations(t *testing.T) {
	for _, o := range []Order{Ascending, Descending} {
		t.Run(o.String(), func(t *testing.T) {
			r := rand.New(rand.NewSource(int64(o) + 42))
			l := New[int64](o)
			m := &model{o: o}

			for step := 0; step < 3000; step++ {
				v := r.Int63n(50)
				switch op := r.Intn(10); op {
				case 0, 1, 2:
					l.Add(v)
					m.s = append(m.s, v)
					m.sort()
				case 3:
					assert.Equal(t, m.removeFirst(v), l.Remove(v))
				case 4:
					n := 0
					m.s = slices.DeleteFunc(m.s, func(x int64) bool {
						if x == v {
							n++
							return true
						}
						return false
					})
					assert.Equal(t, n, l.RemoveEveryOccurrence(v))
				case 5:
					if len(m.s) > 0 {
						i := r.Intn(len(m.s))
						got, err := l.RemoveAt(i)
						require.NoError(t, err)
						assert.Equal(t, m.s[i], got)
						m.s = slices.Delete(m.s, i, i+1)
					}
				case 6:
					batch := []int64{r.Int63n(50), r.Int63n(50), r.Int63n(50)}
					l.AddAll(batch)
					m.s = append(m.s, batch...)
					m.sort()
				case 7:
					assert.Equal(t, slices.Index(m.s, v), l.IndexOf(v))
					assert.Equal(t, slices.Contains(m.s, v), l.Contains(v))
				case 8:
					other := FromSlice([]int64{r.Int63n(50), r.Int63n(50)}, l.Order())
					m.s = append(m.s, other.Values()...)
					m.sort()
					require.NoError(t, l.Merge(other))
					assert.True(t, other.IsEmpty())
				case 9:
					if r.Intn(20) == 0 {
						l.Reverse()
						m.o = m.o.Reverse()
						slices.Reverse(m.s)
					}
				}

				require.NoError(t, l.Validate(), "step %d", step)
				if m.s == nil {
					m.s = []int64{}
				}
				require.Equal(t, m.s, l.Values(), "step %d", step)
				require.Equal(t, len(m.s), l.Len())
			}
		})
	}
}

func TestCacheTransparency(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	values := make([]int64, 500)
	for i := range values {
		values[i] = r.Int63n(100)
	}

	// warm inserts one by one (cache populated), cold rebuilds with no cache
	warm := New[int64](Ascending)
	for i, v := range values {
		warm.Add(v)
		cold := FromSlice(values[:i+1], Ascending)
		require.Equal(t, cold.Values(), warm.Values())

		probe := r.Int63n(110) - 5
		assert.Equal(t, cold.IndexOf(probe), warm.IndexOf(probe))
		assert.Equal(t, cold.Contains(probe), warm.Contains(probe))
		assert.Equal(t, cold.GreaterThan(probe).Values(), warm.GreaterThan(probe).Values())
	}
}

func TestReverseInvolution(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		values := make([]int64, 1+r.Intn(30))
		for j := range values {
			values[j] = r.Int63n(20)
		}
		l := FromSlice(values, Order(r.Intn(2)))
		before := l.Values()
		order := l.Order()

		l.Reverse()
		l.Reverse()

		require.NoError(t, l.Validate())
		assert.Equal(t, order, l.Order())
		assert.Equal(t, before, l.Values())
	}
}

func TestMergeConservation(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		o := Order(r.Intn(2))
		gen := func() []int64 {
			s := make([]int64, r.Intn(15))
			for j := range s {
				s[j] = r.Int63n(30)
			}
			return s
		}
		av, bv := gen(), gen()
		a, b := FromSlice(av, o), FromSlice(bv, o)

		require.NoError(t, a.Merge(b))
		require.NoError(t, a.Validate())
		require.NoError(t, b.Validate())

		want := FromSlice(append(av, bv...), o).Values()
		assert.Equal(t, want, a.Values())
		assert.True(t, b.IsEmpty())
	}
}
