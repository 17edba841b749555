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

// Package gamecache keeps a per-system listing of game files so that large
// ROM folders don't have to be enumerated on every refresh.
//
// A listing is trusted only while its file count matches an expected count
// supplied by the caller (usually derived from a gamelist or other metadata).
// Anything else triggers a background rebuild, which replaces the in-memory
// and on-disk records wholesale.
package gamecache

// Record is the unit of storage for a single system.
type Record struct {
	SystemName string
	FileNames  []string
	FileCount  int
}

// NewRecord builds a record whose count always matches its file list.
func NewRecord(system string, files []string) Record {
	names := make([]string, len(files))
	copy(names, files)
	return Record{
		SystemName: system,
		FileCount:  len(names),
		FileNames:  names,
	}
}

// EmptyRecord is what a failed load resolves to. FileNames is never nil.
func EmptyRecord(system string) Record {
	return Record{
		SystemName: system,
		FileCount:  0,
		FileNames:  []string{},
	}
}

// Valid reports whether the record can be reused for the expected count.
func (r *Record) Valid(expectedCount int) bool {
	return r.FileCount == expectedCount && r.FileCount == len(r.FileNames)
}

// Files returns a copy of the file list.
func (r *Record) Files() []string {
	out := make([]string, len(r.FileNames))
	copy(out, r.FileNames)
	return out
}
