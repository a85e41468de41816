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
	"io"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var nopLogger = zap.NewNop()

const defaultKeyPrefix = "seqlist:"

type RedisBackendOpts struct {
	// Client cannot be nil.
	Client redis.Cmdable

	// ClientCloser closes Client when RedisBackend.Close is called.
	// Optional.
	ClientCloser io.Closer

	// ClientTimeout specifies the timeout for read and write operations.
	// Default is 1s.
	ClientTimeout time.Duration

	// KeyPrefix is prepended to every sequence name. Default is "seqlist:".
	KeyPrefix string

	// Logger is the *zap.Logger for this RedisBackend.
	// A nil Logger will disable logging.
	Logger *zap.Logger
}

func (opts *RedisBackendOpts) Init() error {
	if opts.Client == nil {
		return errors.New("nil client")
	}
	if opts.ClientTimeout <= 0 {
		opts.ClientTimeout = time.Second
	}
	if len(opts.KeyPrefix) == 0 {
		opts.KeyPrefix = defaultKeyPrefix
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger
	}
	return nil
}

type RedisBackend struct {
	opts           RedisBackendOpts
	clientDisabled uint32
}

func NewRedisBackend(opts RedisBackendOpts) (*RedisBackend, error) {
	if err := opts.Init(); err != nil {
		return nil, err
	}
	return &RedisBackend{
		opts: opts,
	}, nil
}

// NewRedisBackendFromURL dials the server described by a redis:// URL.
func NewRedisBackendFromURL(url string, timeout time.Duration, lg *zap.Logger) (*RedisBackend, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url, %w", err)
	}
	c := redis.NewClient(opt)
	return NewRedisBackend(RedisBackendOpts{
		Client:        c,
		ClientCloser:  c,
		ClientTimeout: timeout,
		Logger:        lg,
	})
}

func (r *RedisBackend) key(name string) string {
	return r.opts.KeyPrefix + name
}

func (r *RedisBackend) disabled() bool {
	return atomic.LoadUint32(&r.clientDisabled) != 0
}

// disableClient stops using the client until a background ping succeeds.
func (r *RedisBackend) disableClient() {
	if atomic.CompareAndSwapUint32(&r.clientDisabled, 0, 1) {
		r.opts.Logger.Warn("redis temporarily disabled")
		go func() {
			const maxBackoff = time.Second * 30
			backoff := time.Millisecond * 100
			for {
				time.Sleep(backoff)
				ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*500)
				err := r.opts.Client.Ping(ctx).Err()
				cancel()
				if err != nil {
					if backoff >= maxBackoff {
						backoff = maxBackoff
					} else {
						backoff += time.Duration(rand.Intn(1000))*time.Millisecond + time.Second
					}
					r.opts.Logger.Warn("redis ping failed", zap.Error(err), zap.Duration("next_ping", backoff))
					continue
				}
				atomic.StoreUint32(&r.clientDisabled, 0)
				r.opts.Logger.Info("redis re-enabled")
				return
			}
		}()
	}
}

func (r *RedisBackend) Get(ctx context.Context, name string) ([]byte, error) {
	if r.disabled() {
		return nil, ErrBackendUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, r.opts.ClientTimeout)
	defer cancel()
	b, err := r.opts.Client.Get(ctx, r.key(name)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		r.opts.Logger.Warn("redis get", zap.String("seq", name), zap.Error(err))
		r.disableClient()
		return nil, fmt.Errorf("redis get %s, %w", name, err)
	}
	return b, nil
}

// Store saves a packed snapshot. Entries never expire.
func (r *RedisBackend) Store(ctx context.Context, name string, b []byte) error {
	if r.disabled() {
		return ErrBackendUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, r.opts.ClientTimeout)
	defer cancel()
	if err := r.opts.Client.Set(ctx, r.key(name), b, 0).Err(); err != nil {
		r.opts.Logger.Warn("redis set", zap.String("seq", name), zap.Error(err))
		r.disableClient()
		return fmt.Errorf("redis set %s, %w", name, err)
	}
	return nil
}

// BatchStore saves several snapshots with one pipeline round trip.
func (r *RedisBackend) BatchStore(ctx context.Context, kv map[string][]byte) error {
	if r.disabled() {
		return ErrBackendUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, r.opts.ClientTimeout)
	defer cancel()
	pipeline := r.opts.Client.Pipeline()
	for name, b := range kv {
		pipeline.Set(ctx, r.key(name), b, 0)
	}
	if _, err := pipeline.Exec(ctx); err != nil {
		r.opts.Logger.Warn("redis pipeline set", zap.Error(err))
		r.disableClient()
		return fmt.Errorf("redis pipeline set, %w", err)
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, name string) error {
	if r.disabled() {
		return ErrBackendUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, r.opts.ClientTimeout)
	defer cancel()
	if err := r.opts.Client.Del(ctx, r.key(name)).Err(); err != nil {
		r.opts.Logger.Warn("redis del", zap.String("seq", name), zap.Error(err))
		r.disableClient()
		return fmt.Errorf("redis del %s, %w", name, err)
	}
	return nil
}

// Len counts the keys under the configured prefix.
func (r *RedisBackend) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), r.opts.ClientTimeout)
	defer cancel()
	n := 0
	iter := r.opts.Client.Scan(ctx, 0, r.opts.KeyPrefix+"*", 256).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		r.opts.Logger.Error("redis scan", zap.Error(err))
		return 0
	}
	return n
}

// Close closes the redis client.
func (r *RedisBackend) Close() error {
	if f := r.opts.ClientCloser; f != nil {
		return f.Close()
	}
	return nil
}
