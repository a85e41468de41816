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

package coremain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pmkol/seqlist/mlog"
	"github.com/pmkol/seqlist/pkg/seq_store"
	"github.com/pmkol/seqlist/pkg/server/http_handler"
)

type Seqlist struct {
	logger *zap.Logger
	store  *seq_store.Store

	httpAPIMux *http.ServeMux
	metricsReg *prometheus.Registry
}

// RunSeqlist serves the http api until ctx is done or the server fails.
func RunSeqlist(ctx context.Context, cfg *Config) error {
	lg, err := mlog.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	if len(cfg.API.HTTP) == 0 {
		return errors.New("no api address is configured")
	}

	store, err := newStore(&cfg.Store, lg)
	if err != nil {
		return fmt.Errorf("failed to init store, %w", err)
	}

	m := &Seqlist{
		logger:     lg,
		store:      store,
		httpAPIMux: http.NewServeMux(),
		metricsReg: newMetricsReg(),
	}
	started := false
	defer func() { m.close(started && cfg.Store.SaveOnExit) }()

	if err := seedSequences(store, cfg, lg); err != nil {
		return err
	}
	for _, name := range cfg.Store.Preload {
		c, err := store.Load(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to preload sequence %s, %w", name, err)
		}
		lg.Info("sequence preloaded", zap.String("seq", name), zap.Int("len", c.Len()))
	}

	started = true

	h, err := http_handler.NewHandler(http_handler.HandlerOpts{
		Store:      store,
		MetricsReg: m.GetMetricsReg(),
		Logger:     lg.Named("api"),
	})
	if err != nil {
		return fmt.Errorf("failed to init api handler, %w", err)
	}

	m.httpAPIMux.Handle("/metrics", promhttp.HandlerFor(m.metricsReg, promhttp.HandlerOpts{}))
	m.httpAPIMux.HandleFunc("/debug/pprof/", pprof.Index)
	m.httpAPIMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	m.httpAPIMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	m.httpAPIMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	m.httpAPIMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	m.httpAPIMux.Handle("/", h)

	httpServer := &http.Server{
		Addr:    cfg.API.HTTP,
		Handler: m.httpAPIMux,
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m.logger.Info("starting api http server", zap.String("addr", cfg.API.HTTP))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (m *Seqlist) close(save bool) {
	if save {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		n, err := m.store.SaveAll(ctx)
		cancel()
		if err != nil {
			m.logger.Error("failed to save sequences", zap.Error(err))
		} else {
			m.logger.Info("sequences saved", zap.Int("count", n))
		}
	}
	if err := m.store.Close(); err != nil {
		m.logger.Warn("failed to close store", zap.Error(err))
	}
}

func (m *Seqlist) GetStore() *seq_store.Store {
	return m.store
}

func (m *Seqlist) GetMetricsReg() prometheus.Registerer {
	return prometheus.WrapRegistererWithPrefix("seqlist_", m.metricsReg)
}

func (m *Seqlist) GetHTTPAPIMux() *http.ServeMux {
	return m.httpAPIMux
}

func newMetricsReg() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewGoCollector())
	return reg
}

func newStore(sc *StoreConfig, lg *zap.Logger) (*seq_store.Store, error) {
	timeout := time.Duration(sc.Timeout) * time.Millisecond
	var backend seq_store.Backend
	switch sc.Backend {
	case "", "memory":
		backend = seq_store.NewMemBackend()
	case "redis":
		if len(sc.RedisURL) == 0 {
			return nil, errors.New("redis backend needs a redis_url")
		}
		b, err := seq_store.NewRedisBackendFromURL(sc.RedisURL, timeout, lg.Named("redis"))
		if err != nil {
			return nil, err
		}
		backend = b
	default:
		return nil, fmt.Errorf("unknown store backend %q", sc.Backend)
	}
	s, err := seq_store.NewStore(seq_store.Opts{
		ShardNum: sc.Shards,
		Backend:  backend,
		Compress: sc.Compress,
		Logger:   lg.Named("store"),
	})
	if err != nil {
		backend.Close()
		return nil, err
	}
	return s, nil
}

// seedSequences registers the sequences declared in cfg.
func seedSequences(store *seq_store.Store, cfg *Config, lg *zap.Logger) error {
	names := make([]string, 0, len(cfg.Sequences))
	for name := range cfg.Sequences {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		def := cfg.Sequences[name]
		s, err := def.Build()
		if err != nil {
			return fmt.Errorf("failed to build sequence %s, %w", name, err)
		}
		store.Put(name, s)
		lg.Info("sequence loaded", zap.String("seq", name), zap.Stringer("type", s.Kind()), zap.Int("len", s.Len()))
	}
	return nil
}
