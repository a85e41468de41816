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
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBackend(t *testing.T, b Backend) {
	ctx := context.Background()

	_, err := b.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	v := []byte("value")
	require.NoError(t, b.Store(ctx, "k", v))
	v[0] = 'X'

	got, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
	assert.Equal(t, 1, b.Len())

	require.NoError(t, b.Delete(ctx, "k"))
	_, err = b.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemBackend(t *testing.T) {
	b := NewMemBackend()
	testBackend(t, b)

	require.NoError(t, b.Close())
	_, err := b.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, b.Store(context.Background(), "k", nil), ErrClosed)
}

// Set SEQLIST_TEST_REDIS to a redis:// url to run this test.
func TestRedisBackend(t *testing.T) {
	url := os.Getenv("SEQLIST_TEST_REDIS")
	if len(url) == 0 {
		t.Skip("SEQLIST_TEST_REDIS is not set")
	}
	b, err := NewRedisBackendFromURL(url, time.Second, nil)
	require.NoError(t, err)
	b.opts.KeyPrefix = "seqlist_test:" + time.Now().Format("150405.000000") + ":"
	defer b.Close()

	testBackend(t, b)

	require.NoError(t, b.BatchStore(context.Background(), map[string][]byte{"a": []byte("1"), "b": []byte("2")}))
	assert.Equal(t, 2, b.Len())
	for _, k := range []string{"a", "b"} {
		require.NoError(t, b.Delete(context.Background(), k))
	}
}

func TestRedisBackendOpts(t *testing.T) {
	_, err := NewRedisBackend(RedisBackendOpts{})
	assert.Error(t, err)

	_, err = NewRedisBackendFromURL("not a url", 0, nil)
	assert.Error(t, err)
}
