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

package main

import (
	"github.com/pmkol/seqlist/coremain"
	"github.com/pmkol/seqlist/mlog"
)

func main() {
	if err := coremain.Run(); err != nil {
		mlog.S().Fatal(err)
	}
}
