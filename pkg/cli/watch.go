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
	"io"

	"github.com/ZaparooProject/zaparoo-gamecache/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamecache/pkg/gamecache"
	"github.com/ZaparooProject/zaparoo-gamecache/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-gamecache/pkg/watcher"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Watch reloads a system through the cache whenever its folder changes, and
// prints the new summary to out. It blocks until ctx is done.
func Watch(
	ctx context.Context,
	cfg *config.Instance,
	cache *gamecache.Cache,
	fs afero.Fs,
	systems []config.System,
	out io.Writer,
) error {
	byName := make(map[string]config.System, len(systems))
	folders := make([]watcher.Folder, 0, len(systems))
	for _, s := range systems {
		byName[s.Name] = s
		folders = append(folders, watcher.Folder{System: s.Name, Path: s.Folder})
	}

	var outMu syncutil.Mutex
	w, err := watcher.New(folders, cfg.WatchDebounce(), clockwork.NewRealClock(), func(name string) {
		system, ok := byName[name]
		if !ok {
			return
		}
		log.Info().Str("system", name).Msg("system folder changed, reloading")
		req := NewRequest(ctx, fs, &system)
		res := cache.Load(ctx, req)
		outMu.Lock()
		defer outMu.Unlock()
		PrintReports(out, []Report{{
			System:   system.Name,
			Folder:   system.Folder,
			Expected: req.ExpectedCount,
			Outcome:  res.Outcome,
			Files:    res.Files,
		}}, false)
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	log.Info().Int("folders", w.Watching()).Msg("watching system folders")

	<-ctx.Done()

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}
	return nil
}
