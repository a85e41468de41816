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

package sequence

import (
	"fmt"
	"math"
	"strings"
)

// Kind is the element type tag of a Seq. It is fixed at construction.
type Kind uint8

const (
	KindInt Kind = iota + 1
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindText:
		return "text"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "int", "integer", "number":
		return KindInt, nil
	case "text", "string":
		return KindText, nil
	}
	return 0, fmt.Errorf("invalid element type %q", s)
}

// KindOf returns the kind v would be stored as.
func KindOf(v any) (Kind, bool) {
	if _, ok := toInt(v); ok {
		return KindInt, true
	}
	if _, ok := toText(v); ok {
		return KindText, true
	}
	return 0, false
}

// toInt accepts Go integer types whose value fits in an int64.
// Floats, bools and strings are never converted.
func toInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int16:
		return int64(x), true
	case int8:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	}
	return 0, false
}

func toText(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
