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
	"github.com/pmkol/seqlist/mlog"
	"github.com/pmkol/seqlist/pkg/script"
)

type Config struct {
	Log       mlog.LogConfig           `yaml:"log"`
	Include   []string                 `yaml:"include"`
	API       APIConfig                `yaml:"api"`
	Store     StoreConfig              `yaml:"store"`
	Sequences map[string]script.SeqDef `yaml:"sequences"`
}

type APIConfig struct {
	HTTP string `yaml:"http"`
}

type StoreConfig struct {
	// Backend is "memory" or "redis". Default is "memory".
	Backend  string `yaml:"backend"`
	RedisURL string `yaml:"redis_url"`

	// Timeout for backend operations, in milliseconds.
	Timeout  int  `yaml:"timeout"`
	Compress bool `yaml:"compress"`
	Shards   int  `yaml:"shards"`

	// Preload names sequences read from the backend on start.
	Preload []string `yaml:"preload"`

	// SaveOnExit writes every sequence to the backend on shutdown.
	SaveOnExit bool `yaml:"save_on_exit"`
}
