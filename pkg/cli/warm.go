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
	"runtime"

	"github.com/ZaparooProject/zaparoo-gamecache/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamecache/pkg/gamecache"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Report is the result of loading one system.
type Report struct {
	System   string
	Folder   string
	Files    []string
	Expected int
	Outcome  gamecache.Outcome
}

// Warm loads every system through the cache and returns a report per system
// in the same order. With a global cancel scope loads would cancel each
// other, so they run one at a time.
func Warm(
	ctx context.Context,
	cache *gamecache.Cache,
	fs afero.Fs,
	systems []config.System,
) ([]Report, error) {
	reports := make([]Report, len(systems))

	g, gCtx := errgroup.WithContext(ctx)
	if cache.Scope() == gamecache.ScopeGlobal {
		g.SetLimit(1)
	} else {
		g.SetLimit(runtime.NumCPU())
	}

	for i := range systems {
		system := systems[i]
		g.Go(func() error {
			req := NewRequest(gCtx, fs, &system)
			res := cache.Load(gCtx, req)
			reports[i] = Report{
				System:   system.Name,
				Folder:   system.Folder,
				Expected: req.ExpectedCount,
				Outcome:  res.Outcome,
				Files:    res.Files,
			}
			log.Debug().
				Str("system", system.Name).
				Int("files", len(res.Files)).
				Stringer("outcome", res.Outcome).
				Msg("system loaded")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return reports, fmt.Errorf("warm-up failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return reports, fmt.Errorf("warm-up interrupted: %w", err)
	}
	return reports, nil
}

// PrintReports writes a one-line summary per system, followed by its files
// if listFiles is set.
func PrintReports(out io.Writer, reports []Report, listFiles bool) {
	for _, r := range reports {
		_, _ = fmt.Fprintf(out, "%s: %d files (%s)\n", r.System, len(r.Files), r.Outcome)
		if !listFiles {
			continue
		}
		for _, f := range r.Files {
			_, _ = fmt.Fprintf(out, "  %s\n", f)
		}
	}
}
