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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestInstance_ConcurrentAccess runs getters and setters together. With
// -tags=deadlock, go-deadlock panics on lock misuse.
func TestInstance_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	systems := []System{{Name: "NES", Folder: "/roms/nes", Extensions: []string{"*.nes"}}}

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for range 10 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				for range 100 {
					cfg.SetSystems(systems)
				}
			}()
			go func() {
				defer wg.Done()
				for range 100 {
					_ = cfg.Systems()
					_, _ = cfg.LookupSystem("NES")
					_ = cfg.CacheDir("/opt/app")
					_ = cfg.CancelScope()
				}
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("concurrent config access deadlocked")
	}

	sys, ok := cfg.LookupSystem("NES")
	assert.True(t, ok)
	assert.Equal(t, "/roms/nes", sys.Folder)
}
