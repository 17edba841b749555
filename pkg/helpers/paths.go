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
	"os"
	"path/filepath"
	"sync"

	"github.com/ZaparooProject/zaparoo-gamecache/pkg/config"
	"github.com/adrg/xdg"
)

// AppEnv overrides the application directory, mostly for tests.
const AppEnv = "GAMECACHE_APP"

// UserDir is the portable-mode directory: when it exists next to the
// executable, config and logs are kept there instead of the XDG dirs.
const UserDir = "user"

var (
	userDirOnce        sync.Once
	userDirCache       string
	userDirCacheExists bool
)

func ExeDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}

	return filepath.Dir(exe)
}

// AppDir is the directory relative cache paths resolve against.
func AppDir() string {
	if v := os.Getenv(AppEnv); v != "" {
		return v
	}
	return ExeDir()
}

func HasUserDir() (string, bool) {
	userDirOnce.Do(func() {
		appDir := AppDir()
		if appDir == "" {
			return
		}

		userDir := filepath.Join(appDir, UserDir)
		info, err := os.Stat(userDir)
		if err != nil || !info.IsDir() {
			return
		}

		userDirCache = userDir
		userDirCacheExists = true
	})

	return userDirCache, userDirCacheExists
}

func ConfigDir() string {
	if v, ok := HasUserDir(); ok {
		return v
	}
	return filepath.Join(xdg.ConfigHome, config.AppName)
}

func LogDir() string {
	if v, ok := HasUserDir(); ok {
		return filepath.Join(v, config.LogsDir)
	}
	return filepath.Join(xdg.StateHome, config.AppName, config.LogsDir)
}
