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

package gamecache

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/text/cases"
)

// cancelCheckInterval is how many directory entries are matched between
// cancellation checks within a single pattern.
const cancelCheckInterval = 256

// Scanner produces a fresh file list for a folder.
type Scanner interface {
	// Scan returns every file in folder matching any of the patterns. If ctx
	// is cancelled it returns ctx.Err() and no files. If the folder can't be
	// read it returns whatever was found so far and an *EnumerationError.
	Scan(ctx context.Context, folder string, patterns []string) ([]string, error)
}

// Matcher is a case-insensitive glob for file names, e.g. "*.nes". It is
// not safe for concurrent use.
type Matcher struct {
	caser   cases.Caser
	pattern string
	raw     string
}

// NewMatcher compiles a glob in filepath.Match syntax.
func NewMatcher(pattern string) (*Matcher, error) {
	caser := cases.Fold()
	folded := caser.String(pattern)
	if _, err := filepath.Match(folded, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return &Matcher{
		caser:   caser,
		pattern: folded,
		raw:     pattern,
	}, nil
}

func (m *Matcher) Match(name string) bool {
	ok, err := filepath.Match(m.pattern, m.caser.String(name))
	return err == nil && ok
}

func (m *Matcher) String() string {
	return m.raw
}

// DirScanner lists the top level of a folder once per pattern. Results are
// appended in pattern order and are not de-duplicated, so a file matching two
// patterns is listed twice.
type DirScanner struct {
	fs afero.Fs
}

func NewDirScanner(fs afero.Fs) *DirScanner {
	return &DirScanner{fs: fs}
}

func (s *DirScanner) Scan(ctx context.Context, folder string, patterns []string) ([]string, error) {
	files := make([]string, 0)

	for _, pattern := range patterns {
		if err := ctx.Err(); err != nil {
			return nil, err //nolint:wrapcheck // callers compare against context errors
		}

		matcher, err := NewMatcher(pattern)
		if err != nil {
			log.Warn().Err(err).Str("folder", folder).Msg("skipping file pattern")
			continue
		}

		entries, err := afero.ReadDir(s.fs, folder)
		if err != nil {
			return files, &EnumerationError{Folder: folder, Pattern: pattern, Err: err}
		}

		for i, entry := range entries {
			if i%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err //nolint:wrapcheck // callers compare against context errors
				}
			}

			if entry.IsDir() {
				continue
			}
			if matcher.Match(entry.Name()) {
				files = append(files, filepath.Join(folder, entry.Name()))
			}
		}

		log.Debug().
			Str("folder", folder).
			Str("pattern", pattern).
			Int("total", len(files)).
			Msg("scanned pattern")
	}

	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck // callers compare against context errors
	}

	return files, nil
}
