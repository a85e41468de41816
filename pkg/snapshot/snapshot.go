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

// Package snapshot is the serialized form of a sequence:
// {type, ascending, count, values}. It is produced by one forward walk and
// can be restored into an equivalent sequence.
package snapshot

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/pmkol/seqlist/pkg/sequence"
)

var (
	ErrCountMismatch = errors.New("snapshot count does not match values")
	ErrBadFrame      = errors.New("bad snapshot frame")
)

type Snapshot struct {
	Type      string `json:"type" yaml:"type"`
	Ascending bool   `json:"ascending" yaml:"ascending"`
	Count     int    `json:"count" yaml:"count"`
	Values    []any  `json:"values" yaml:"values"`
}

// Take captures the current state of s.
func Take(s *sequence.Seq) *Snapshot {
	return &Snapshot{
		Type:      s.Kind().String(),
		Ascending: s.Order() == sequence.Ascending,
		Count:     s.Len(),
		Values:    s.Values(),
	}
}

// Restore builds a new sequence from sn. Unlike sequence.FromValues an
// empty snapshot is fine, because its type is recorded.
func (sn *Snapshot) Restore() (*sequence.Seq, error) {
	k, err := sequence.ParseKind(sn.Type)
	if err != nil {
		return nil, err
	}
	if sn.Count != len(sn.Values) {
		return nil, fmt.Errorf("%w: count %d, %d values", ErrCountMismatch, sn.Count, len(sn.Values))
	}
	o := sequence.Descending
	if sn.Ascending {
		o = sequence.Ascending
	}
	s, err := sequence.New(k, o)
	if err != nil {
		return nil, err
	}
	values, err := normalize(k, sn.Values)
	if err != nil {
		return nil, err
	}
	if err := s.AddAll(values); err != nil {
		return nil, err
	}
	return s, nil
}

// normalize turns decoder-specific number types into int64. Anything that
// is not an exact integer is left as is and rejected by the sequence.
func normalize(k sequence.Kind, values []any) ([]any, error) {
	if k != sequence.KindInt {
		return values, nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		if n, ok := v.(json.Number); ok {
			x, err := n.Int64()
			if err != nil {
				return nil, fmt.Errorf("%w: element %d, %s is not an int", sequence.ErrTypeMismatch, i, n)
			}
			v = x
		}
		out[i] = v
	}
	return out, nil
}
