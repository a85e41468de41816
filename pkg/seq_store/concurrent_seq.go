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

package seq_store

import (
	"sync"

	"github.com/pmkol/seqlist/pkg/sequence"
	"github.com/pmkol/seqlist/pkg/snapshot"
)

// ConcurrentSeq serializes every access to one sequence with a single
// exclusive lock.
type ConcurrentSeq struct {
	sync.Mutex
	s *sequence.Seq
}

func NewConcurrentSeq(s *sequence.Seq) *ConcurrentSeq {
	return &ConcurrentSeq{s: s}
}

// Do runs f with the lock held. f must not keep s after it returns.
func (c *ConcurrentSeq) Do(f func(s *sequence.Seq) error) error {
	c.Lock()
	defer c.Unlock()
	return f(c.s)
}

func (c *ConcurrentSeq) replace(s *sequence.Seq) {
	c.Lock()
	c.s = s
	c.Unlock()
}

func (c *ConcurrentSeq) Add(v any) error {
	c.Lock()
	err := c.s.Add(v)
	c.Unlock()
	return err
}

func (c *ConcurrentSeq) AddAll(values []any) error {
	c.Lock()
	err := c.s.AddAll(values)
	c.Unlock()
	return err
}

func (c *ConcurrentSeq) Remove(v any) (bool, error) {
	c.Lock()
	ok, err := c.s.Remove(v)
	c.Unlock()
	return ok, err
}

func (c *ConcurrentSeq) Contains(v any) (bool, error) {
	c.Lock()
	ok, err := c.s.Contains(v)
	c.Unlock()
	return ok, err
}

func (c *ConcurrentSeq) Len() int {
	c.Lock()
	n := c.s.Len()
	c.Unlock()
	return n
}

func (c *ConcurrentSeq) Kind() sequence.Kind {
	// The kind is fixed at construction.
	return c.s.Kind()
}

// Snapshot captures the sequence under the lock.
func (c *ConcurrentSeq) Snapshot() *snapshot.Snapshot {
	c.Lock()
	sn := snapshot.Take(c.s)
	c.Unlock()
	return sn
}
