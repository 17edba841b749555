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
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	// CacheDirName is the default cache directory, relative to the app dir.
	CacheDirName = "cache"
	// FileExt is appended to the system name to form a cache file name.
	FileExt = ".cache"
	// DirMode is the permission the cache directory is created with.
	DirMode os.FileMode = 0o750
)

// Store persists records between runs.
type Store interface {
	// Path returns where the record for a system lives.
	Path(system string) string
	Exists(system string) bool
	// Load returns the record for a system. On any failure it returns an
	// empty record and a non-nil error; it never panics.
	Load(system string) (Record, error)
	// Save overwrites the record for a system.
	Save(system string, rec Record) error
	Close() error
}

// FileStore keeps one encoded file per system in a cache directory.
type FileStore struct {
	fs       afero.Fs
	dir      string
	degraded atomic.Bool
}

// NewFileStore creates a store rooted at dir and makes sure the directory
// exists. A directory that can't be created is logged and leaves the store
// degraded rather than failing.
func NewFileStore(fs afero.Fs, dir string) *FileStore {
	s := &FileStore{
		fs:  fs,
		dir: dir,
	}
	if err := s.EnsureDirectory(); err != nil {
		log.Error().Err(err).Str("dir", dir).
			Msg("cache directory unavailable, file lists will not be persisted")
	}
	return s
}

// EnsureDirectory creates the cache directory if needed. Calling it again
// after a failure retries and clears the degraded flag on success.
func (s *FileStore) EnsureDirectory() error {
	if err := s.fs.MkdirAll(s.dir, DirMode); err != nil {
		s.degraded.Store(true)
		return &DirectoryCreationError{Path: s.dir, Err: err}
	}

	info, err := s.fs.Stat(s.dir)
	if err != nil {
		s.degraded.Store(true)
		return &DirectoryCreationError{Path: s.dir, Err: err}
	}
	if !info.IsDir() {
		s.degraded.Store(true)
		return &DirectoryCreationError{Path: s.dir, Err: errors.New("path is not a directory")}
	}

	s.degraded.Store(false)
	return nil
}

// Degraded reports whether persistence is disabled.
func (s *FileStore) Degraded() bool {
	return s.degraded.Load()
}

// Dir returns the cache directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path maps a system name to <dir>/<name>.cache.
func (s *FileStore) Path(system string) string {
	return filepath.Join(s.dir, FileName(system))
}

func (s *FileStore) Exists(system string) bool {
	if s.degraded.Load() {
		return false
	}
	exists, err := afero.Exists(s.fs, s.Path(system))
	if err != nil {
		return false
	}
	return exists
}

func (s *FileStore) Load(system string) (Record, error) {
	if s.degraded.Load() {
		return EmptyRecord(system), ErrDegraded
	}

	path := s.Path(system)
	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return EmptyRecord(system), ErrNotCached
	} else if err != nil {
		return EmptyRecord(system), fmt.Errorf("failed to read cache file %s: %w", path, err)
	}

	rec, err := Decode(data)
	if err != nil {
		return EmptyRecord(system), fmt.Errorf("cache file %s: %w", path, err)
	}
	rec.SystemName = system

	return rec, nil
}

func (s *FileStore) Save(system string, rec Record) error {
	if s.degraded.Load() {
		return ErrDegraded
	}

	path := s.Path(system)
	data, err := Encode(rec)
	if err != nil {
		return &EncodeOrWriteError{System: system, Path: path, Err: err}
	}

	tmp, err := afero.TempFile(s.fs, s.dir, FileName(system)+".tmp-*")
	if err != nil {
		return &EncodeOrWriteError{System: system, Path: path, Err: err}
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(tmpName)
		return &EncodeOrWriteError{System: system, Path: path, Err: err}
	}

	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return &EncodeOrWriteError{System: system, Path: path, Err: err}
	}

	return nil
}

func (*FileStore) Close() error {
	return nil
}

// FileName returns the cache file name for a system. Characters that aren't
// allowed in file names on common platforms, control characters and '%' are
// percent-encoded, so distinct system names never share a file. Names that
// would be empty or a dot path get a form no other name can encode to.
func FileName(system string) string {
	switch system {
	case "":
		return "%" + FileExt
	case ".", "..":
		return strings.Repeat("%2E", len(system)) + FileExt
	}

	var b strings.Builder
	b.Grow(len(system) + len(FileExt))
	for i := range len(system) {
		c := system[i]
		if reservedFileNameByte(c) {
			_, _ = fmt.Fprintf(&b, "%%%02X", c)
			continue
		}
		b.WriteByte(c)
	}
	b.WriteString(FileExt)
	return b.String()
}

func reservedFileNameByte(c byte) bool {
	switch c {
	case '/', '\\', ':', '*', '?', '"', '<', '>', '|', '%', 0x7f:
		return true
	default:
		return c < 0x20
	}
}
