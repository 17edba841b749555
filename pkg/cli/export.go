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
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
)

// ExportRow is one file in a CSV export.
type ExportRow struct {
	System  string `csv:"system"`
	Path    string `csv:"path"`
	Outcome string `csv:"outcome"`
}

// ExportRows flattens reports into one row per file.
func ExportRows(reports []Report) []*ExportRow {
	rows := make([]*ExportRow, 0)
	for _, r := range reports {
		for _, f := range r.Files {
			rows = append(rows, &ExportRow{
				System:  r.System,
				Path:    f,
				Outcome: r.Outcome.String(),
			})
		}
	}
	return rows
}

// ExportCSV writes every loaded file to path as CSV.
func ExportCSV(fs afero.Fs, path string, reports []Report) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := gocsv.Marshal(ExportRows(reports), f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	return nil
}
