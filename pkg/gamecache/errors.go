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
	"errors"
	"fmt"
)

var (
	// ErrNotCached is returned by a Store when no record exists for a system.
	ErrNotCached = errors.New("no cached record")
	// ErrDegraded is returned by a Store whose backing directory could not be
	// created. Loads always miss and saves are dropped.
	ErrDegraded = errors.New("cache store is degraded")
	// ErrCountMismatch is returned when encoding a record whose FileCount does
	// not match the number of file names it holds.
	ErrCountMismatch = errors.New("record file count does not match file names")
)

// DirectoryCreationError is reported when the cache directory can't be made.
type DirectoryCreationError struct {
	Err  error
	Path string
}

func (e *DirectoryCreationError) Error() string {
	return fmt.Sprintf("failed to create cache directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryCreationError) Unwrap() error {
	return e.Err
}

// EnumerationError is reported when a system folder can't be listed. Any files
// found before the failure are still returned alongside it.
type EnumerationError struct {
	Err     error
	Folder  string
	Pattern string
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("failed to enumerate %s for pattern %q: %v", e.Folder, e.Pattern, e.Err)
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// DecodeError describes a cache blob that could not be decoded.
type DecodeError struct {
	Err    error
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to decode cache record: %s: %v", e.Reason, e.Err)
	}
	return "failed to decode cache record: " + e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeOrWriteError is reported when a record can't be encoded or written.
// The freshly built list is still handed to the caller.
type EncodeOrWriteError struct {
	Err    error
	System string
	Path   string
}

func (e *EncodeOrWriteError) Error() string {
	return fmt.Sprintf("failed to persist cache for %s to %s: %v", e.System, e.Path, e.Err)
}

func (e *EncodeOrWriteError) Unwrap() error {
	return e.Err
}
