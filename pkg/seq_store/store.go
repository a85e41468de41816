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
	"context"
	"errors"
	"fmt"
	"hash/maphash"
	"maps"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/pmkol/seqlist/pkg/sequence"
	"github.com/pmkol/seqlist/pkg/snapshot"
	"github.com/pmkol/seqlist/pkg/sorted_list"
)

const defaultShardNum = 16

type Opts struct {
	// ShardNum must be a power of 2. Default is 16.
	ShardNum int

	// Backend persists snapshots on Save and serves Load.
	// Default is a MemBackend.
	Backend Backend

	// Compress packs stored snapshots with snappy.
	Compress bool

	// Logger is the *zap.Logger for this Store.
	// A nil Logger will disable logging.
	Logger *zap.Logger
}

func (opts *Opts) Init() error {
	if opts.ShardNum == 0 {
		opts.ShardNum = defaultShardNum
	}
	if opts.ShardNum < 0 || opts.ShardNum&(opts.ShardNum-1) != 0 {
		return fmt.Errorf("shard num must be a power of 2 and > 0, got %d", opts.ShardNum)
	}
	if opts.Backend == nil {
		opts.Backend = NewMemBackend()
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger
	}
	return nil
}

// Store is a registry of named sequences. Names are spread over shards by
// hash, and each sequence carries its own lock.
type Store struct {
	opts   Opts
	seed   maphash.Seed
	shards []*shard
	mask   uint64 // shardNum - 1
	loadSF singleflight.Group
}

type shard struct {
	sync.RWMutex
	m map[string]*ConcurrentSeq
}

func NewStore(opts Opts) (*Store, error) {
	if err := opts.Init(); err != nil {
		return nil, err
	}
	s := &Store{
		opts:   opts,
		seed:   maphash.MakeSeed(),
		shards: make([]*shard, opts.ShardNum),
		mask:   uint64(opts.ShardNum - 1),
	}
	for i := range s.shards {
		s.shards[i] = &shard{m: make(map[string]*ConcurrentSeq)}
	}
	return s, nil
}

func (s *Store) getShard(name string) *shard {
	h := maphash.String(s.seed, name)
	return s.shards[int(h&s.mask)]
}

func (s *Store) Get(name string) (*ConcurrentSeq, bool) {
	sh := s.getShard(name)
	sh.RLock()
	c, ok := sh.m[name]
	sh.RUnlock()
	return c, ok
}

// Put registers seq under name. When name is already registered its
// ConcurrentSeq is kept and its content is swapped under its lock, so
// callers holding that ConcurrentSeq see seq from then on. Writers racing
// a Put are ordered by the lock: the last one wins.
func (s *Store) Put(name string, seq *sequence.Seq) *ConcurrentSeq {
	sh := s.getShard(name)
	sh.Lock()
	c, ok := sh.m[name]
	if !ok {
		c = NewConcurrentSeq(seq)
		sh.m[name] = c
	}
	sh.Unlock()
	if ok {
		// Not under the shard lock, c may be held by a long Do.
		c.replace(seq)
	}
	return c
}

// Delete drops name from memory. Stored snapshots are kept. Callers still
// holding the dropped ConcurrentSeq keep a detached sequence.
func (s *Store) Delete(name string) bool {
	sh := s.getShard(name)
	sh.Lock()
	_, ok := sh.m[name]
	delete(sh.m, name)
	sh.Unlock()
	return ok
}

// Names returns every registered name in ascending order.
func (s *Store) Names() []string {
	names := sorted_list.New[string](sorted_list.Ascending)
	for _, sh := range s.shards {
		sh.RLock()
		names.MergeSeq(maps.Keys(sh.m))
		sh.RUnlock()
	}
	return names.Values()
}

func (s *Store) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.RLock()
		n += len(sh.m)
		sh.RUnlock()
	}
	return n
}

func (s *Store) lookup(name string) (*ConcurrentSeq, error) {
	c, ok := s.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return c, nil
}

// Do runs f on the named sequence while holding its lock.
func (s *Store) Do(name string, f func(seq *sequence.Seq) error) error {
	c, err := s.lookup(name)
	if err != nil {
		return err
	}
	return c.Do(f)
}

// Do2 runs f on two named sequences while holding both locks. Locks are
// taken in name order. When both names are equal f gets the same
// sequence twice and the lock is taken once.
func (s *Store) Do2(a, b string, f func(x, y *sequence.Seq) error) error {
	ca, err := s.lookup(a)
	if err != nil {
		return err
	}
	cb, err := s.lookup(b)
	if err != nil {
		return err
	}
	if ca == cb {
		return ca.Do(func(x *sequence.Seq) error { return f(x, x) })
	}
	first, second := ca, cb
	if b < a {
		first, second = cb, ca
	}
	first.Lock()
	defer first.Unlock()
	second.Lock()
	defer second.Unlock()
	return f(ca.s, cb.s)
}

// Save packs the named sequence and writes it to the backend.
func (s *Store) Save(ctx context.Context, name string) error {
	c, err := s.lookup(name)
	if err != nil {
		return err
	}
	b, err := snapshot.Pack(c.Snapshot(), s.opts.Compress)
	if err != nil {
		return fmt.Errorf("failed to pack %s, %w", name, err)
	}
	if err := s.opts.Backend.Store(ctx, name, b); err != nil {
		return err
	}
	s.opts.Logger.Debug("sequence saved", zap.String("seq", name), zap.Int("bytes", len(b)))
	return nil
}

type batchStorer interface {
	BatchStore(ctx context.Context, kv map[string][]byte) error
}

// SaveAll writes every registered sequence, in one batch when the backend
// supports it. It returns the number of sequences written.
func (s *Store) SaveAll(ctx context.Context) (int, error) {
	kv := make(map[string][]byte)
	for _, name := range s.Names() {
		c, ok := s.Get(name)
		if !ok {
			continue
		}
		b, err := snapshot.Pack(c.Snapshot(), s.opts.Compress)
		if err != nil {
			return 0, fmt.Errorf("failed to pack %s, %w", name, err)
		}
		kv[name] = b
	}

	if bs, ok := s.opts.Backend.(batchStorer); ok {
		if err := bs.BatchStore(ctx, kv); err != nil {
			return 0, err
		}
		return len(kv), nil
	}
	n := 0
	for name, b := range kv {
		if err := s.opts.Backend.Store(ctx, name, b); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Load reads the named snapshot from the backend and registers it,
// replacing the in-memory sequence. Concurrent loads of one name share a
// single backend read.
func (s *Store) Load(ctx context.Context, name string) (*ConcurrentSeq, error) {
	v, err, _ := s.loadSF.Do(name, func() (any, error) {
		b, err := s.opts.Backend.Get(ctx, name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
			}
			return nil, err
		}
		sn, err := snapshot.Unpack(b)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack %s, %w", name, err)
		}
		seq, err := sn.Restore()
		if err != nil {
			return nil, fmt.Errorf("failed to restore %s, %w", name, err)
		}
		s.opts.Logger.Debug("sequence loaded", zap.String("seq", name), zap.Int("len", seq.Len()))
		return s.Put(name, seq), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ConcurrentSeq), nil
}

// GetOrLoad returns the in-memory sequence, loading it from the backend
// on a miss.
func (s *Store) GetOrLoad(ctx context.Context, name string) (*ConcurrentSeq, error) {
	if c, ok := s.Get(name); ok {
		return c, nil
	}
	return s.Load(ctx, name)
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.opts.Backend.Close()
}
