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
	"fmt"
	"sort"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap"

	"github.com/pmkol/seqlist/pkg/seq_store"
	"github.com/pmkol/seqlist/pkg/sequence"
)

// OpFunc runs one step. args is the value returned by the op's NewArgs,
// filled from the step.
type OpFunc func(c *Context, args any) error

// NewArgsFunc returns a pointer the step arguments decode into. A nil
// NewArgsFunc means the op takes no arguments.
type NewArgsFunc func() any

type opInfo struct {
	run     OpFunc
	newArgs NewArgsFunc
}

var (
	opsMu sync.RWMutex
	ops   = make(map[string]opInfo)
)

// RegOp registers an op. It panics if name is already taken.
func RegOp(name string, run OpFunc, newArgs NewArgsFunc) {
	opsMu.Lock()
	defer opsMu.Unlock()
	if _, dup := ops[name]; dup {
		panic(fmt.Sprintf("duplicated op %s", name))
	}
	ops[name] = opInfo{run: run, newArgs: newArgs}
}

func getOp(name string) (opInfo, bool) {
	opsMu.RLock()
	defer opsMu.RUnlock()
	op, ok := ops[name]
	return op, ok
}

// Ops returns the registered op names in ascending order.
func Ops() []string {
	opsMu.RLock()
	defer opsMu.RUnlock()
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func decodeArgs(in map[string]any, newArgs NewArgsFunc) (any, error) {
	if newArgs == nil {
		if len(in) > 0 {
			return nil, fmt.Errorf("op takes no arguments, got %d", len(in))
		}
		return nil, nil
	}
	args := newArgs()
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		TagName:     "yaml",
		Result:      args,
	})
	if err != nil {
		return nil, err
	}
	if err := d.Decode(in); err != nil {
		return nil, fmt.Errorf("invalid arguments, %w", err)
	}
	return args, nil
}

// Context is what an op sees of the running script.
type Context struct {
	Step  int
	Seq   string
	Op    string
	Store *seq_store.Store
	lg    *zap.Logger
	r     *Runner
}

func (c *Context) Logger() *zap.Logger {
	return c.lg
}

// Do runs f on the target sequence.
func (c *Context) Do(f func(s *sequence.Seq) error) error {
	return c.Store.Do(c.Seq, f)
}

// Source returns from, or the target sequence name when from is empty.
func (c *Context) Source(from string) string {
	if len(from) == 0 {
		return c.Seq
	}
	return from
}

// Put registers s as the target sequence.
func (c *Context) Put(s *sequence.Seq) {
	c.Store.Put(c.Seq, s)
}

// Emit writes one result line.
func (c *Context) Emit(v any) error {
	return c.r.emit(c, v)
}
