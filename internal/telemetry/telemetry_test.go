// Zaparoo Core
// Copyright (c) 2025 The Zaparoo Project Contributors.
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

package telemetry

import (
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no username in path",
			input:    "/usr/local/bin/gamecache",
			expected: "/usr/local/bin/gamecache",
		},
		{
			name:     "linux home path",
			input:    "/home/callan/dev/zaparoo-gamecache/pkg/config/config.go",
			expected: "/home/<user>/dev/zaparoo-gamecache/pkg/config/config.go",
		},
		{
			name:     "linux home path uppercase",
			input:    "/Home/Callan/dev/zaparoo-gamecache/pkg/config/config.go",
			expected: "/home/<user>/dev/zaparoo-gamecache/pkg/config/config.go",
		},
		{
			name:     "macos users path",
			input:    "/Users/callan/Documents/roms/snes",
			expected: "/Users/<user>/Documents/roms/snes",
		},
		{
			name:     "macos users path lowercase",
			input:    "/users/callan/Documents/roms/snes",
			expected: "/Users/<user>/Documents/roms/snes",
		},
		{
			name:     "windows path",
			input:    "C:\\Users\\callan\\AppData\\Local\\zaparoo-gamecache\\config.toml",
			expected: "C:\\Users\\<user>\\AppData\\Local\\zaparoo-gamecache\\config.toml",
		},
		{
			name:     "windows path lowercase drive",
			input:    "c:\\Users\\JohnDoe\\Documents\\zaparoo",
			expected: "C:\\Users\\<user>\\Documents\\zaparoo",
		},
		{
			name:     "windows path different drive",
			input:    "D:\\Users\\admin\\zaparoo\\logs",
			expected: "C:\\Users\\<user>\\zaparoo\\logs",
		},
		{
			name:     "cache path in error",
			input:    "failed to write /home/user123/gamecache/cache/NES.cache: read-only file system",
			expected: "failed to write /home/<user>/gamecache/cache/NES.cache: read-only file system",
		},
		{
			name:     "multiple paths in message",
			input:    "copying /home/alice/src to /home/bob/dst",
			expected: "copying /home/<user>/src to /home/<user>/dst",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := sanitizePath(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSanitizeEvent(t *testing.T) {
	t.Parallel()

	event := &sentry.Event{
		ServerName: "retropie",
		Message:    "failed to enumerate /home/pi/RetroPie/roms/nes",
		Exception: []sentry.Exception{{
			Value: "open /home/pi/RetroPie/roms/nes: permission denied",
			Stacktrace: &sentry.Stacktrace{Frames: []sentry.Frame{{
				AbsPath:  "/Users/dev/src/zaparoo-gamecache/pkg/gamecache/rebuild.go",
				Filename: "/Users/dev/src/zaparoo-gamecache/pkg/gamecache/rebuild.go",
			}}},
		}},
		Extra: map[string]any{
			"folder": "/home/pi/RetroPie/roms/nes",
			"count":  10,
		},
		Tags: map[string]string{"path": `C:\Users\gamer\roms`},
	}

	got := sanitizeEvent(event)

	assert.Empty(t, got.ServerName)
	assert.Equal(t, "failed to enumerate /home/<user>/RetroPie/roms/nes", got.Message)
	assert.Equal(t, "open /home/<user>/RetroPie/roms/nes: permission denied", got.Exception[0].Value)
	frame := got.Exception[0].Stacktrace.Frames[0]
	assert.Equal(t, "/Users/<user>/src/zaparoo-gamecache/pkg/gamecache/rebuild.go", frame.AbsPath)
	assert.Equal(t, "/Users/<user>/src/zaparoo-gamecache/pkg/gamecache/rebuild.go", frame.Filename)
	assert.Equal(t, "/home/<user>/RetroPie/roms/nes", got.Extra["folder"])
	assert.Equal(t, 10, got.Extra["count"])
	assert.Equal(t, `C:\Users\<user>\roms`, got.Tags["path"])
}

func TestInit_Disabled(t *testing.T) {
	t.Parallel()
	require.NoError(t, Init(false, "", "test"))
	assert.False(t, Enabled())
}

func TestInit_MissingDSN(t *testing.T) {
	t.Parallel()
	require.ErrorIs(t, Init(true, "", "test"), ErrNoDSN)
	assert.False(t, Enabled())
}

func TestEnabled(t *testing.T) {
	t.Parallel()

	// enabled starts as false
	assert.False(t, Enabled(), "telemetry should be disabled by default")
}

func TestCloseWhenDisabled(t *testing.T) {
	t.Parallel()

	// Should not panic when called while disabled
	Close()
}

func TestFlushWhenDisabled(t *testing.T) {
	t.Parallel()

	// Should not panic when called while disabled
	Flush()
}
