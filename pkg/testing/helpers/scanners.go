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
	"context"
	"sync"
	"sync/atomic"

	"github.com/ZaparooProject/zaparoo-gamecache/pkg/gamecache"
)

// CountingScanner wraps a scanner and counts how many scans it performed.
type CountingScanner struct {
	Inner gamecache.Scanner
	calls atomic.Int64
}

func NewCountingScanner(inner gamecache.Scanner) *CountingScanner {
	return &CountingScanner{Inner: inner}
}

func (s *CountingScanner) Scan(ctx context.Context, folder string, patterns []string) ([]string, error) {
	s.calls.Add(1)
	//nolint:wrapcheck // pass-through
	return s.Inner.Scan(ctx, folder, patterns)
}

// Calls returns the number of Scan calls so far.
func (s *CountingScanner) Calls() int {
	return int(s.calls.Load())
}

// BlockingScanner holds every scan of a gated folder until it is released or
// its context is cancelled, so tests can line up overlapping rebuilds.
// Folders that aren't gated go straight to Inner.
type BlockingScanner struct {
	Inner gamecache.Scanner
	gates map[string]*Gate
	mu    sync.Mutex
}

// Gate controls one folder of a BlockingScanner.
type Gate struct {
	started  chan struct{}
	release  chan struct{}
	finished chan error
	once     sync.Once
}

func NewBlockingScanner(inner gamecache.Scanner) *BlockingScanner {
	return &BlockingScanner{
		Inner: inner,
		gates: make(map[string]*Gate),
	}
}

// Gate blocks the next scans of folder and returns its controls.
func (s *BlockingScanner) Gate(folder string) *Gate {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := &Gate{
		started:  make(chan struct{}),
		release:  make(chan struct{}),
		finished: make(chan error, 1),
	}
	s.gates[folder] = g
	return g
}

func (s *BlockingScanner) Scan(ctx context.Context, folder string, patterns []string) ([]string, error) {
	s.mu.Lock()
	g, ok := s.gates[folder]
	s.mu.Unlock()

	if ok {
		g.once.Do(func() { close(g.started) })
		select {
		case <-ctx.Done():
			g.finished <- ctx.Err()
			return nil, ctx.Err() //nolint:wrapcheck // mirrors DirScanner
		case <-g.release:
		}
	}

	files, err := s.Inner.Scan(ctx, folder, patterns)
	if ok {
		g.finished <- err
	}
	//nolint:wrapcheck // pass-through
	return files, err
}

// Started is closed once a scan has reached the gate.
func (g *Gate) Started() <-chan struct{} {
	return g.started
}

// Release lets the waiting scan continue.
func (g *Gate) Release() {
	close(g.release)
}

// Finished receives the gated scan's error (nil on success) once it returns.
func (g *Gate) Finished() <-chan error {
	return g.finished
}
