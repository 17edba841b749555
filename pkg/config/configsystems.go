// Zaparoo Core
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Core.
//
// Zaparoo Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Core.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"slices"
	"strings"
)

const (
	CountSourceGamelist  = "gamelist"
	CountSourceDirectory = "directory"
	CountSourceFixed     = "fixed"
)

// System is one cached folder. Extensions are glob patterns matched against
// file names; a bare ".ext" is shorthand for "*.ext".
type System struct {
	Name          string   `toml:"name" validate:"required,sysname"`
	Folder        string   `toml:"folder" validate:"required"`
	CountSource   string   `toml:"count_source,omitempty" validate:"omitempty,oneof=gamelist directory fixed"`
	Extensions    []string `toml:"extensions,multiline" validate:"required,min=1,dive,required,glob"`
	ExpectedCount int      `toml:"expected_count,omitempty" validate:"gte=0"`
}

// Patterns returns the glob patterns to enumerate the folder with.
func (s *System) Patterns() []string {
	patterns := make([]string, 0, len(s.Extensions))
	for _, ext := range s.Extensions {
		if strings.HasPrefix(ext, ".") && !strings.ContainsAny(ext, "*?[") {
			ext = "*" + ext
		}
		patterns = append(patterns, ext)
	}
	return patterns
}

// Source returns the count source, defaulting to the gamelist.
func (s *System) Source() string {
	if s.CountSource == "" {
		return CountSourceGamelist
	}
	return s.CountSource
}

func (c *Instance) Systems() []System {
	c.mu.RLock()
	defer c.mu.RUnlock()
	systems := make([]System, len(c.vals.Systems))
	for i, s := range c.vals.Systems {
		s.Extensions = slices.Clone(s.Extensions)
		systems[i] = s
	}
	return systems
}

func (c *Instance) LookupSystem(name string) (System, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.vals.Systems {
		if strings.EqualFold(s.Name, name) {
			s.Extensions = slices.Clone(s.Extensions)
			return s, true
		}
	}
	return System{}, false
}

func (c *Instance) SetSystems(systems []System) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Systems = slices.Clone(systems)
}
