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

package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-gamecache/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamecache/pkg/gamecache"
	"github.com/ZaparooProject/zaparoo-gamecache/pkg/gamelist"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// OpenStore opens the disk store selected by the config's cache backend. The
// bolt backend always uses the real filesystem. If it can't be opened the
// store falls back to files in the same dir, which degrades to never
// persisting when the dir itself is unusable.
func OpenStore(cfg *config.Instance, fs afero.Fs, appDir string) gamecache.Store {
	dir := cfg.CacheDir(appDir)

	if cfg.CacheBackend() == config.BackendBolt {
		store, err := openBoltStore(fs, dir)
		if err == nil {
			return store
		}
		log.Error().Err(err).Str("dir", dir).Msg("bolt cache unavailable, falling back to file cache")
	}

	store := gamecache.NewFileStore(fs, dir)
	if store.Degraded() {
		log.Warn().Str("dir", dir).Msg("cache dir unavailable, results will not be persisted")
	}
	return store
}

func openBoltStore(fs afero.Fs, dir string) (*gamecache.BoltStore, error) {
	if err := fs.MkdirAll(dir, gamecache.DirMode); err != nil {
		return nil, &gamecache.DirectoryCreationError{Path: dir, Err: err}
	}
	store, err := gamecache.OpenBoltStore(filepath.Join(dir, gamecache.BoltFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt cache: %w", err)
	}
	return store, nil
}

// NewCache builds a cache over store that enumerates system folders on fs.
func NewCache(cfg *config.Instance, fs afero.Fs, store gamecache.Store) (*gamecache.Cache, error) {
	scope, err := gamecache.ParseCancelScope(cfg.CancelScope())
	if err != nil {
		return nil, fmt.Errorf("invalid cancel scope: %w", err)
	}
	return gamecache.New(
		store,
		gamecache.NewDirScanner(fs),
		gamecache.WithCancelScope(scope),
	), nil
}

// SelectSystems returns the configured systems, or only the named one if
// name is set.
func SelectSystems(cfg *config.Instance, name string) ([]config.System, error) {
	if name == "" {
		return cfg.Systems(), nil
	}
	system, ok := cfg.LookupSystem(name)
	if !ok {
		return nil, fmt.Errorf("unknown system: %s", name)
	}
	return []config.System{system}, nil
}

// NewRequest resolves the expected count for a system and turns it into a
// cache request.
func NewRequest(ctx context.Context, fs afero.Fs, system *config.System) gamecache.Request {
	return gamecache.Request{
		SystemName:    system.Name,
		Folder:        system.Folder,
		Patterns:      system.Patterns(),
		ExpectedCount: gamelist.Expected(ctx, fs, system),
	}
}
