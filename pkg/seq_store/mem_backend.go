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
	"sync"
	"sync/atomic"
)

// MemBackend keeps snapshots in process memory. It is mainly useful for
// tests and for running without Redis.
type MemBackend struct {
	closed uint32

	m  sync.RWMutex
	kv map[string][]byte
}

func NewMemBackend() *MemBackend {
	return &MemBackend{kv: make(map[string][]byte)}
}

func (b *MemBackend) isClosed() bool {
	return atomic.LoadUint32(&b.closed) != 0
}

func (b *MemBackend) Get(_ context.Context, key string) ([]byte, error) {
	if b.isClosed() {
		return nil, ErrClosed
	}
	b.m.RLock()
	v, ok := b.kv[key]
	b.m.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (b *MemBackend) Store(_ context.Context, key string, v []byte) error {
	if b.isClosed() {
		return ErrClosed
	}
	// The backend owns its copy.
	buf := make([]byte, len(v))
	copy(buf, v)

	b.m.Lock()
	b.kv[key] = buf
	b.m.Unlock()
	return nil
}

func (b *MemBackend) Delete(_ context.Context, key string) error {
	if b.isClosed() {
		return ErrClosed
	}
	b.m.Lock()
	delete(b.kv, key)
	b.m.Unlock()
	return nil
}

func (b *MemBackend) Len() int {
	b.m.RLock()
	defer b.m.RUnlock()
	return len(b.kv)
}

func (b *MemBackend) Close() error {
	atomic.StoreUint32(&b.closed, 1)
	return nil
}
