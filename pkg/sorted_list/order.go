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

package sorted_list

import (
	"cmp"
	"fmt"
	"strings"
)

// Order is the sort direction a List maintains.
type Order uint8

const (
	Ascending Order = iota
	Descending
)

func (o Order) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// Reverse returns the opposite direction.
func (o Order) Reverse() Order {
	if o == Descending {
		return Ascending
	}
	return Descending
}

// Compare orders a and b under o. A negative result means a comes first.
func Compare[V cmp.Ordered](o Order, a, b V) int {
	if o == Descending {
		return cmp.Compare(b, a)
	}
	return cmp.Compare(a, b)
}

// ParseOrder accepts "asc", "ascending", "desc", "descending" (any case).
// An empty string means Ascending.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("invalid sort order %q", s)
}
