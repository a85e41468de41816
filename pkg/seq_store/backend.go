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
	"io"
)

var (
	ErrNotFound           = errors.New("sequence not found")
	ErrBackendUnavailable = errors.New("backend temporarily unavailable")
	ErrClosed             = errors.New("backend closed")
)

// Backend persists packed snapshots by sequence name.
type Backend interface {
	// Get returns the stored bytes or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Store saves b under key. b is copied or fully written before Store
	// returns, so callers may reuse it.
	Store(ctx context.Context, key string, b []byte) error

	Delete(ctx context.Context, key string) error

	Len() int

	io.Closer
}
