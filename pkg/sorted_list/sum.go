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
	"fmt"

	"golang.org/x/exp/constraints"
)

// Sum adds every value of l. It fails with ErrOverflow instead of wrapping.
func Sum[V constraints.Integer](l *List[V]) (V, error) {
	var s V
	for e := l.front; e != nil; e = e.next {
		v := e.value
		r := s + v
		if (v > 0 && r < s) || (v < 0 && r > s) {
			return 0, fmt.Errorf("%w: %v + %v", ErrOverflow, s, v)
		}
		s = r
	}
	return s, nil
}
