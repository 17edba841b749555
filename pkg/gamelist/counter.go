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

package gamelist

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-gamecache/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamecache/pkg/gamecache"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Counter reports how many files a system folder is expected to hold.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// GamelistCounter counts the games listed in the folder's gamelist.xml.
type GamelistCounter struct {
	Fs     afero.Fs
	Folder string
}

func (c *GamelistCounter) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err //nolint:wrapcheck // plain cancellation
	}

	path := filepath.Join(c.Folder, FileName)
	gameList, err := ReadGameList(c.Fs, path)
	if err != nil {
		return 0, err
	}

	n := gameList.CountGames()
	log.Debug().
		Str("path", path).
		Int("count", n).
		Msg("counted gamelist entries")
	return n, nil
}

// DirectoryCounter counts folder entries the same way DirScanner enumerates
// them, without keeping the names.
type DirectoryCounter struct {
	Fs       afero.Fs
	Folder   string
	Patterns []string
}

func (c *DirectoryCounter) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err //nolint:wrapcheck // plain cancellation
	}

	entries, err := afero.ReadDir(c.Fs, c.Folder)
	if err != nil {
		return 0, fmt.Errorf("failed to list %s: %w", c.Folder, err)
	}

	n := 0
	for _, pattern := range c.Patterns {
		m, err := gamecache.NewMatcher(pattern)
		if err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Msg("skipping invalid pattern")
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() && m.Match(entry.Name()) {
				n++
			}
		}
	}
	return n, nil
}

// FixedCounter always returns N.
type FixedCounter struct {
	N int
}

func (c FixedCounter) Count(context.Context) (int, error) {
	return c.N, nil
}

// CounterFor picks the counter configured for a system.
func CounterFor(fs afero.Fs, system *config.System) Counter {
	switch system.Source() {
	case config.CountSourceDirectory:
		return &DirectoryCounter{Fs: fs, Folder: system.Folder, Patterns: system.Patterns()}
	case config.CountSourceFixed:
		return FixedCounter{N: system.ExpectedCount}
	default:
		return &GamelistCounter{Fs: fs, Folder: system.Folder}
	}
}

// Expected resolves a system's expected count. A count that can't be read is
// logged and treated as 0, which forces a rebuild unless the folder is empty.
func Expected(ctx context.Context, fs afero.Fs, system *config.System) int {
	n, err := CounterFor(fs, system).Count(ctx)
	if err != nil {
		log.Warn().Err(err).
			Str("system", system.Name).
			Str("source", system.Source()).
			Msg("failed to read expected count")
		return 0
	}
	return n
}
