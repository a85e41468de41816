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
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/pmkol/seqlist/pkg/seq_store"
	"github.com/pmkol/seqlist/pkg/sequence"
)

var nopLogger = zap.NewNop()

type RunnerOpts struct {
	// Store holds the sequences. Required.
	Store *seq_store.Store

	// Out receives one JSON line per result. Default is io.Discard.
	Out io.Writer

	// Check validates the target sequence after every step.
	Check bool

	// Logger is the *zap.Logger for this Runner.
	// A nil Logger will disable logging.
	Logger *zap.Logger
}

func (opts *RunnerOpts) Init() error {
	if opts.Store == nil {
		return errors.New("nil store")
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger
	}
	return nil
}

type Runner struct {
	opts RunnerOpts
	enc  *json.Encoder
}

func NewRunner(opts RunnerOpts) (*Runner, error) {
	if err := opts.Init(); err != nil {
		return nil, err
	}
	return &Runner{opts: opts, enc: json.NewEncoder(opts.Out)}, nil
}

// Result is one output line.
type Result struct {
	Step   int    `json:"step"`
	Seq    string `json:"seq"`
	Op     string `json:"op"`
	Result any    `json:"result"`
}

func (r *Runner) emit(c *Context, v any) error {
	return r.enc.Encode(Result{Step: c.Step, Seq: c.Seq, Op: c.Op, Result: v})
}

// Run registers the script's seed sequences, replacing any sequence with
// the same name, then runs every step in order. It stops at the first
// failing step.
func (r *Runner) Run(ctx context.Context, sc *Script) error {
	names := make([]string, 0, len(sc.Sequences))
	for name := range sc.Sequences {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		def := sc.Sequences[name]
		s, err := def.Build()
		if err != nil {
			return fmt.Errorf("failed to build sequence %s, %w", name, err)
		}
		r.opts.Store.Put(name, s)
	}

	for i := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runStep(i, &sc.Steps[i]); err != nil {
			return fmt.Errorf("step #%d (%s), %w", i, sc.Steps[i].Op, err)
		}
	}
	return nil
}

func (r *Runner) runStep(i int, step *Step) error {
	if len(step.Seq) == 0 {
		return errors.New("missing seq")
	}
	op, ok := getOp(step.Op)
	if !ok {
		return fmt.Errorf("unknown op %q", step.Op)
	}
	args, err := decodeArgs(step.Args, op.newArgs)
	if err != nil {
		return err
	}

	c := &Context{
		Step:  i,
		Seq:   step.Seq,
		Op:    step.Op,
		Store: r.opts.Store,
		lg:    r.opts.Logger,
		r:     r,
	}
	if err := op.run(c, args); err != nil {
		return err
	}
	r.opts.Logger.Debug("step done", zap.Int("step", i), zap.String("seq", step.Seq), zap.String("op", step.Op))

	if r.opts.Check {
		if s, ok := r.opts.Store.Get(step.Seq); ok {
			if err := s.Do(func(s *sequence.Seq) error { return s.Validate() }); err != nil {
				return fmt.Errorf("check failed, %w", err)
			}
		}
	}
	return nil
}
