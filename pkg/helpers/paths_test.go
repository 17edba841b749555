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
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/zaparoo-gamecache/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestAppDir_Env(t *testing.T) {
	t.Setenv(AppEnv, "/opt/gamecache")
	assert.Equal(t, "/opt/gamecache", AppDir())
}

func TestAppDir_DefaultsToExeDir(t *testing.T) {
	t.Setenv(AppEnv, "")
	assert.Equal(t, ExeDir(), AppDir())
	assert.NotEmpty(t, ExeDir())
}

func TestConfigAndLogDirs(t *testing.T) {
	t.Parallel()

	cfgDir := ConfigDir()
	logDir := LogDir()

	if userDir, ok := HasUserDir(); ok {
		assert.Equal(t, userDir, cfgDir)
		assert.Equal(t, filepath.Join(userDir, config.LogsDir), logDir)
		return
	}

	assert.Equal(t, config.AppName, filepath.Base(cfgDir))
	assert.Equal(t, config.LogsDir, filepath.Base(logDir))
	assert.Equal(t, config.AppName, filepath.Base(filepath.Dir(logDir)))
}
