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

// Package script runs declarative step lists against a seq_store.Store.
//
// A script names its seed sequences and then a list of steps. Each step
// targets one sequence (seq) and runs one registered op. Any other keys of
// the step are op arguments:
//
//	sequences:
//	  a: {type: int, order: asc, values: [5, 2, 8]}
//	steps:
//	  - {seq: a, op: add, value: 3}
//	  - {seq: a, op: filter, expr: "value > 2"}
//	  - {seq: a, op: print}
package script

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pmkol/seqlist/pkg/sequence"
)

type Script struct {
	Sequences map[string]SeqDef `yaml:"sequences"`
	Steps     []Step            `yaml:"steps"`
}

// SeqDef describes a seed sequence. Type may be omitted when Values is not
// empty.
type SeqDef struct {
	Type   string `yaml:"type"`
	Order  string `yaml:"order"`
	Values []any  `yaml:"values"`
}

type Step struct {
	Seq  string         `yaml:"seq"`
	Op   string         `yaml:"op"`
	Args map[string]any `yaml:",inline"`
}

// Parse decodes a script. Unknown top level keys are rejected.
func Parse(b []byte) (*Script, error) {
	d := yaml.NewDecoder(bytes.NewReader(b))
	d.KnownFields(true)
	sc := new(Script)
	if err := d.Decode(sc); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	return sc, nil
}

func LoadFile(path string) (*Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Build creates the sequence described by d.
func (d *SeqDef) Build() (*sequence.Seq, error) {
	o, err := sequence.ParseOrder(d.Order)
	if err != nil {
		return nil, err
	}
	if len(d.Type) == 0 {
		return sequence.FromValues(d.Values, o)
	}
	k, err := sequence.ParseKind(d.Type)
	if err != nil {
		return nil, err
	}
	s, err := sequence.New(k, o)
	if err != nil {
		return nil, err
	}
	if err := s.AddAll(d.Values); err != nil {
		return nil, err
	}
	return s, nil
}
