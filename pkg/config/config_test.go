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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZaparooProject/zaparoo-gamecache/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CfgFile), []byte(content), 0o600))
}

func TestNewConfig_WritesDefaults(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	cfg, err := NewConfig(tempDir, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tempDir, CfgFile), cfg.Path())
	assert.FileExists(t, cfg.Path())

	assert.Equal(t, BackendFile, cfg.CacheBackend())
	assert.Equal(t, ScopeSystem, cfg.CancelScope())
	assert.Equal(t, DefaultWatchDebounce, cfg.WatchDebounce())
	assert.False(t, cfg.DebugLogging())
	assert.False(t, cfg.ErrorReporting())
	assert.Empty(t, cfg.Systems())

	data, err := os.ReadFile(cfg.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "config_schema = 1")
}

func TestNewConfig_LoadsExisting(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	writeConfig(t, tempDir, `
config_schema = 1
debug_logging = true
error_reporting = true
error_reporting_dsn = "https://key@sentry.example.com/1"

[cache]
dir = "/var/cache/gamecache"
backend = "bolt"
cancel_scope = "global"
watch_debounce_ms = 250

[[systems]]
name = "NES"
folder = "/roms/nes"
extensions = ["*.nes", ".zip"]

[[systems]]
name = "SNES"
folder = "/roms/snes"
extensions = ["*.sfc", "*.smc"]
count_source = "fixed"
expected_count = 42
`)

	cfg, err := NewConfig(tempDir, BaseDefaults)
	require.NoError(t, err)

	assert.True(t, cfg.DebugLogging())
	assert.True(t, cfg.ErrorReporting())
	assert.Equal(t, "https://key@sentry.example.com/1", cfg.ErrorReportingDSN())
	assert.Equal(t, BackendBolt, cfg.CacheBackend())
	assert.Equal(t, ScopeGlobal, cfg.CancelScope())
	assert.Equal(t, 250*time.Millisecond, cfg.WatchDebounce())
	assert.Equal(t, "/var/cache/gamecache", cfg.CacheDir("/opt/app"))

	systems := cfg.Systems()
	require.Len(t, systems, 2)
	assert.Equal(t, "NES", systems[0].Name)
	assert.Equal(t, []string{"*.nes", "*.zip"}, systems[0].Patterns())
	assert.Equal(t, CountSourceGamelist, systems[0].Source())
	assert.Equal(t, CountSourceFixed, systems[1].Source())
	assert.Equal(t, 42, systems[1].ExpectedCount)
}

func TestNewConfig_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config_schema = 1\n[cache]\nbackend = \"bolt\"\n")

	cfg, err := NewConfig(tempDir, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, BackendBolt, cfg.CacheBackend())
	assert.Equal(t, ScopeSystem, cfg.CancelScope())
	assert.Equal(t, DefaultWatchDebounce, cfg.WatchDebounce())
}

func TestNewConfig_SchemaMismatch(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config_schema = 2\n")

	_, err := NewConfig(tempDir, BaseDefaults)
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestNewConfig_BadToml(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config_schema = = 1\n")

	_, err := NewConfig(tempDir, BaseDefaults)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config")
}

func TestNewConfig_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		message string
	}{
		{
			name:    "unknown backend",
			content: "config_schema = 1\n[cache]\nbackend = \"sqlite\"\n",
			message: "backend must be one of: file bolt",
		},
		{
			name:    "unknown cancel scope",
			content: "config_schema = 1\n[cache]\ncancel_scope = \"world\"\n",
			message: "cancel_scope must be one of: system global",
		},
		{
			name:    "negative debounce",
			content: "config_schema = 1\n[cache]\nwatch_debounce_ms = -1\n",
			message: "watch_debounce_ms must be greater than or equal to 0",
		},
		{
			name: "missing folder",
			content: `config_schema = 1
[[systems]]
name = "NES"
extensions = ["*.nes"]
`,
			message: "folder is required",
		},
		{
			name: "bad glob",
			content: `config_schema = 1
[[systems]]
name = "NES"
folder = "/roms/nes"
extensions = ["[nes"]
`,
			message: "not a valid glob pattern",
		},
		{
			name: "no extensions",
			content: `config_schema = 1
[[systems]]
name = "NES"
folder = "/roms/nes"
extensions = []
`,
			message: "extensions",
		},
		{
			name: "duplicate system",
			content: `config_schema = 1
[[systems]]
name = "NES"
folder = "/roms/nes"
extensions = ["*.nes"]

[[systems]]
name = "NES"
folder = "/roms/famicom"
extensions = ["*.fds"]
`,
			message: "systems must not repeat name",
		},
		{
			name: "unknown count source",
			content: `config_schema = 1
[[systems]]
name = "NES"
folder = "/roms/nes"
extensions = ["*.nes"]
count_source = "guess"
`,
			message: "count_source must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tempDir := t.TempDir()
			writeConfig(t, tempDir, tt.content)

			_, err := NewConfig(tempDir, BaseDefaults)
			require.Error(t, err)

			var ve *validation.Error
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestInstance_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	cfg, err := NewConfig(tempDir, BaseDefaults)
	require.NoError(t, err)

	cfg.SetSystems([]System{{
		Name:        "Game Boy",
		Folder:      "/roms/gb",
		Extensions:  []string{"*.gb", "*.gbc"},
		CountSource: CountSourceDirectory,
	}})
	require.NoError(t, cfg.Save())
	require.NoError(t, cfg.Load())

	sys, ok := cfg.LookupSystem("game boy")
	require.True(t, ok)
	assert.Equal(t, "/roms/gb", sys.Folder)
	assert.Equal(t, []string{"*.gb", "*.gbc"}, sys.Extensions)
	assert.Equal(t, CountSourceDirectory, sys.Source())
}

func TestInstance_CacheDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		dir      string
		expected string
	}{
		{name: "unset uses app dir", dir: "", expected: filepath.Join("/opt/app", CacheDir)},
		{name: "relative", dir: "data/cache", expected: filepath.Join("/opt/app", "data", "cache")},
		{name: "absolute", dir: "/var/cache/gc/", expected: "/var/cache/gc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &Instance{vals: Values{Cache: Cache{Dir: tt.dir}}}
			assert.Equal(t, tt.expected, cfg.CacheDir("/opt/app"))
		})
	}
}

func TestInstance_EmptyDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	assert.Equal(t, BackendFile, cfg.CacheBackend())
	assert.Equal(t, ScopeSystem, cfg.CancelScope())
	assert.Zero(t, cfg.WatchDebounce())
	require.Error(t, cfg.Load())
	require.Error(t, cfg.Save())
}

func TestOpen_CustomPath(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "nested", "custom.toml")
	cfg, err := Open(cfgPath, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, cfgPath, cfg.Path())
	assert.FileExists(t, cfgPath)
}
