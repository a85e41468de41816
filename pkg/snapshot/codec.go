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

package snapshot

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/golang/snappy"
	"gopkg.in/yaml.v3"
)

const (
	framePlain  byte = 'J'
	frameSnappy byte = 'S'
)

func EncodeJSON(sn *Snapshot) ([]byte, error) {
	return json.Marshal(sn)
}

// DecodeJSON keeps numbers as json.Number so large ints survive intact.
func DecodeJSON(b []byte) (*Snapshot, error) {
	d := json.NewDecoder(bytes.NewReader(b))
	d.UseNumber()
	sn := new(Snapshot)
	if err := d.Decode(sn); err != nil {
		return nil, fmt.Errorf("failed to decode json snapshot: %w", err)
	}
	return sn, nil
}

func EncodeYAML(sn *Snapshot) ([]byte, error) {
	return yaml.Marshal(sn)
}

func DecodeYAML(b []byte) (*Snapshot, error) {
	sn := new(Snapshot)
	if err := yaml.Unmarshal(b, sn); err != nil {
		return nil, fmt.Errorf("failed to decode yaml snapshot: %w", err)
	}
	return sn, nil
}

// Pack encodes sn for storage: one frame byte followed by the JSON body,
// snappy-compressed if compress is set.
func Pack(sn *Snapshot, compress bool) ([]byte, error) {
	body, err := EncodeJSON(sn)
	if err != nil {
		return nil, err
	}
	if !compress {
		return append([]byte{framePlain}, body...), nil
	}
	out := make([]byte, 1, 1+snappy.MaxEncodedLen(len(body)))
	out[0] = frameSnappy
	return append(out, snappy.Encode(nil, body)...), nil
}

func Unpack(b []byte) (*Snapshot, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadFrame)
	}
	body := b[1:]
	switch b[0] {
	case framePlain:
	case frameSnappy:
		var err error
		body, err = snappy.Decode(nil, body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadFrame, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown frame type 0x%02x", ErrBadFrame, b[0])
	}
	return DecodeJSON(body)
}
