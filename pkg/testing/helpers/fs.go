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

package helpers

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// FSHelper provides utilities for filesystem mocking in tests
type FSHelper struct {
	Fs afero.Fs
}

// NewMemoryFS creates a new in-memory filesystem for testing
func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// NewOSFS creates a filesystem helper using the real filesystem (for integration tests)
func NewOSFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewOsFs(),
	}
}

// CreateSystemFolder creates a ROM folder containing empty files with the
// given names and returns their full paths in the same order.
func (h *FSHelper) CreateSystemFolder(folder string, names ...string) ([]string, error) {
	if err := h.Fs.MkdirAll(folder, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create system folder %s: %w", folder, err)
	}

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(folder, name)
		if err := afero.WriteFile(h.Fs, path, []byte{}, 0o644); err != nil {
			return nil, fmt.Errorf("failed to create game file %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// NumberedGames returns count names like "Game 01.ext".
func NumberedGames(count int, ext string) []string {
	names := make([]string, count)
	for i := range names {
		names[i] = fmt.Sprintf("Game %02d%s", i+1, ext)
	}
	return names
}

// CreateDirectoryStructure creates a complex directory structure for testing
func (h *FSHelper) CreateDirectoryStructure(structure map[string]any) error {
	return h.createStructureRecursive("", structure)
}

// createStructureRecursive recursively creates directory structures
func (h *FSHelper) createStructureRecursive(basePath string, structure map[string]any) error {
	for name, content := range structure {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			// It's a file with content
			if err := h.Fs.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
				return fmt.Errorf("failed to create directory for file %s: %w", fullPath, err)
			}
			if err := afero.WriteFile(h.Fs, fullPath, []byte(v), 0o644); err != nil {
				return fmt.Errorf("failed to write file %s: %w", fullPath, err)
			}
		case []byte:
			// It's a file with binary content
			if err := h.Fs.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
				return fmt.Errorf("failed to create directory for binary file %s: %w", fullPath, err)
			}
			if err := afero.WriteFile(h.Fs, fullPath, v, 0o644); err != nil {
				return fmt.Errorf("failed to write binary file %s: %w", fullPath, err)
			}
		case map[string]any:
			// It's a directory with subdirectories/files
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", fullPath, err)
			}
			if err := h.createStructureRecursive(fullPath, v); err != nil {
				return err
			}
		case nil:
			// It's an empty directory
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create empty directory %s: %w", fullPath, err)
			}
		}
	}
	return nil
}

// FileExists checks if a file exists
func (h *FSHelper) FileExists(path string) bool {
	exists, err := afero.Exists(h.Fs, path)
	if err != nil {
		return false
	}
	return exists
}

// ReadFile reads a file and returns its content
func (h *FSHelper) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(h.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes content to a file, creating parent directories
func (h *FSHelper) WriteFile(path string, content []byte) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for file %s: %w", path, err)
	}
	if err := afero.WriteFile(h.Fs, path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// GetROMsTestStructure returns a roms tree with an EmulationStation gamelist
// for the NES folder.
func GetROMsTestStructure() map[string]any {
	return map[string]any{
		"/roms": map[string]any{
			"nes": map[string]any{
				"Super Mario Bros. (World).nes": []byte{0x4E, 0x45, 0x53, 0x1A}, // iNES header
				"Metroid (USA).nes":             []byte{0x4E, 0x45, 0x53, 0x1A},
				"Zelda (USA).zip":               []byte{0x50, 0x4B}, // ZIP header
				"readme.txt":                    "not a game\n",
				"gamelist.xml": `<?xml version="1.0"?>
<gameList>
	<game><path>./Super Mario Bros. (World).nes</path><name>Super Mario Bros.</name></game>
	<game><path>./Metroid (USA).nes</path><name>Metroid</name></game>
	<game><path>./Zelda (USA).zip</path><name>The Legend of Zelda</name></game>
</gameList>
`,
				"Homebrew.nes": nil, // directories never match
			},
			"snes": map[string]any{
				"Super Metroid (USA).sfc": []byte{0x00},
				"F-Zero (USA).SMC":        []byte{0x00},
			},
			"empty": nil,
		},
	}
}
