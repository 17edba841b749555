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

package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const debounceDelay = 500 * time.Millisecond

type fireRecorder struct {
	fired chan string
	mu    sync.Mutex
	keys  []string
}

func newFireRecorder() *fireRecorder {
	return &fireRecorder{fired: make(chan string, 16)}
}

func (r *fireRecorder) fire(key string) {
	r.mu.Lock()
	r.keys = append(r.keys, key)
	r.mu.Unlock()
	r.fired <- key
}

func (r *fireRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys)
}

func waitFire(t *testing.T, r *fireRecorder) string {
	t.Helper()
	select {
	case key := <-r.fired:
		return key
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for debounced callback")
	}
	return ""
}

func assertNoFire(t *testing.T, r *fireRecorder) {
	t.Helper()
	select {
	case key := <-r.fired:
		t.Fatalf("unexpected callback for %q", key)
	case <-time.After(50 * time.Millisecond):
	}
}

func blockUntil(t *testing.T, clock *clockwork.FakeClock, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, n))
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	rec := newFireRecorder()
	d := NewDebouncer(clock, debounceDelay, rec.fire)
	defer d.Stop()

	for range 5 {
		d.Trigger("NES")
		clock.Advance(debounceDelay / 2)
	}
	assert.Equal(t, 1, d.Pending())
	assertNoFire(t, rec)

	blockUntil(t, clock, 1)
	clock.Advance(debounceDelay)

	assert.Equal(t, "NES", waitFire(t, rec))
	assertNoFire(t, rec)
	assert.Equal(t, 1, rec.count())
	assert.Equal(t, 0, d.Pending())
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	rec := newFireRecorder()
	d := NewDebouncer(clock, debounceDelay, rec.fire)
	defer d.Stop()

	d.Trigger("NES")
	d.Trigger("SNES")
	assert.Equal(t, 2, d.Pending())

	blockUntil(t, clock, 2)
	clock.Advance(debounceDelay)

	got := []string{waitFire(t, rec), waitFire(t, rec)}
	assert.ElementsMatch(t, []string{"NES", "SNES"}, got)
}

func TestDebouncer_FiresAgainAfterQuiet(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	rec := newFireRecorder()
	d := NewDebouncer(clock, debounceDelay, rec.fire)
	defer d.Stop()

	d.Trigger("NES")
	clock.Advance(debounceDelay)
	waitFire(t, rec)

	d.Trigger("NES")
	clock.Advance(debounceDelay)
	waitFire(t, rec)

	assert.Equal(t, 2, rec.count())
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	rec := newFireRecorder()
	d := NewDebouncer(clock, debounceDelay, rec.fire)

	d.Trigger("NES")
	d.Stop()
	assert.Equal(t, 0, d.Pending())

	clock.Advance(2 * debounceDelay)
	assertNoFire(t, rec)

	d.Trigger("NES")
	assert.Equal(t, 0, d.Pending(), "triggers after stop are ignored")
}

func TestWatcher_ReportsChanges(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nes := filepath.Join(root, "nes")
	snes := filepath.Join(root, "snes")
	require.NoError(t, os.MkdirAll(nes, 0o750))
	require.NoError(t, os.MkdirAll(snes, 0o750))

	rec := newFireRecorder()
	w, err := New([]Folder{
		{System: "NES", Path: nes},
		{System: "SNES", Path: snes},
		{System: "Missing", Path: filepath.Join(root, "missing")},
	}, 20*time.Millisecond, clockwork.NewRealClock(), rec.fire)
	require.NoError(t, err)
	defer func() { assert.NoError(t, w.Close()) }()

	assert.Equal(t, 2, w.Watching())

	for _, name := range []string{"a.nes", "b.nes", "c.nes"} {
		require.NoError(t, os.WriteFile(filepath.Join(nes, name), []byte("rom"), 0o600))
	}
	assert.Equal(t, "NES", waitFire(t, rec))
}

func TestWatcher_RenameAcrossFolders(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nes := filepath.Join(root, "nes")
	snes := filepath.Join(root, "snes")
	require.NoError(t, os.MkdirAll(nes, 0o750))
	require.NoError(t, os.MkdirAll(snes, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(nes, "a.nes"), []byte("rom"), 0o600))

	rec := newFireRecorder()
	w, err := New([]Folder{
		{System: "NES", Path: nes},
		{System: "SNES", Path: snes},
	}, 200*time.Millisecond, clockwork.NewRealClock(), rec.fire)
	require.NoError(t, err)
	defer func() { assert.NoError(t, w.Close()) }()

	require.NoError(t, os.Rename(filepath.Join(nes, "a.nes"), filepath.Join(snes, "a.sfc")))
	got := []string{waitFire(t, rec), waitFire(t, rec)}
	assert.ElementsMatch(t, []string{"NES", "SNES"}, got)
}

func TestWatcher_SharedFolder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	rec := newFireRecorder()
	w, err := New([]Folder{
		{System: "Genesis", Path: root},
		{System: "Mega Drive", Path: root + string(filepath.Separator)},
	}, 200*time.Millisecond, nil, rec.fire)
	require.NoError(t, err)
	defer func() { assert.NoError(t, w.Close()) }()

	assert.Equal(t, 1, w.Watching())

	require.NoError(t, os.WriteFile(filepath.Join(root, "sonic.md"), []byte("rom"), 0o600))
	got := []string{waitFire(t, rec), waitFire(t, rec)}
	assert.ElementsMatch(t, []string{"Genesis", "Mega Drive"}, got)
}

func TestWatcher_CloseTwice(t *testing.T) {
	t.Parallel()

	w, err := New(nil, debounceDelay, clockwork.NewFakeClock(), func(string) {})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
