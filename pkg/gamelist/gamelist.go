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

// Package gamelist provides the expected game counts the cache checks its
// records against.
package gamelist

import (
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// FileName is the EmulationStation gamelist kept in each system folder.
const FileName = "gamelist.xml"

// GameEntry represents a game from an EmulationStation gamelist.xml file.
type GameEntry struct {
	// Name is the display name of the game
	Name string `xml:"name"`
	// Path is the path to the ROM file (may be relative to the system folder)
	Path string `xml:"path"`
}

// GameList represents the structure of an EmulationStation gamelist.xml file.
type GameList struct {
	XMLName xml.Name    `xml:"gameList"`
	Games   []GameEntry `xml:"game"`
}

// ReadGameList reads and parses a gamelist.xml file from the given path.
func ReadGameList(fs afero.Fs, path string) (GameList, error) {
	cleanPath := filepath.Clean(path)

	xmlFile, err := fs.Open(cleanPath)
	if err != nil {
		return GameList{}, fmt.Errorf("failed to open gamelist.xml at %s: %w", cleanPath, err)
	}
	defer func() {
		if closeErr := xmlFile.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing gamelist.xml file")
		}
	}()

	data, err := io.ReadAll(xmlFile)
	if err != nil {
		return GameList{}, fmt.Errorf("failed to read gamelist.xml at %s: %w", cleanPath, err)
	}

	var gameList GameList
	if err := xml.Unmarshal(data, &gameList); err != nil {
		return GameList{}, fmt.Errorf("failed to parse gamelist.xml: %w", err)
	}

	return gameList, nil
}

// CountGames returns the number of entries that point at a file.
func (gl *GameList) CountGames() int {
	n := 0
	for _, game := range gl.Games {
		if game.Path != "" {
			n++
		}
	}
	return n
}
