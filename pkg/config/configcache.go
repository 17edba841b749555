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
	"path/filepath"
	"time"
)

// CacheDir returns the directory cache files live in. An unset or relative
// dir is resolved against appDir.
func (c *Instance) CacheDir(appDir string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dir := c.vals.Cache.Dir
	if dir == "" {
		return filepath.Join(appDir, CacheDir)
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(appDir, dir)
}

func (c *Instance) CacheBackend() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Cache.Backend == "" {
		return BackendFile
	}
	return c.vals.Cache.Backend
}

func (c *Instance) CancelScope() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Cache.CancelScope == "" {
		return ScopeSystem
	}
	return c.vals.Cache.CancelScope
}

// WatchDebounce is how long the watcher waits for a folder to settle.
func (c *Instance) WatchDebounce() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Cache.WatchDebounceMs) * time.Millisecond
}
