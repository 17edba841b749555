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
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ZaparooProject/zaparoo-gamecache/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
)

// CancelScope decides which in-flight rebuilds a new rebuild cancels.
type CancelScope int

const (
	// ScopeSystem gives every system its own cancellation handle. A new
	// rebuild only cancels an in-flight rebuild of the same system.
	ScopeSystem CancelScope = iota
	// ScopeGlobal shares one handle across all systems, so any new rebuild
	// cancels whatever rebuild is in flight. At most one rebuild runs at a
	// time per Cache.
	ScopeGlobal
)

const (
	ScopeNameSystem = "system"
	ScopeNameGlobal = "global"
)

func ParseCancelScope(s string) (CancelScope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", ScopeNameSystem:
		return ScopeSystem, nil
	case ScopeNameGlobal:
		return ScopeGlobal, nil
	default:
		return ScopeSystem, fmt.Errorf("unknown cancel scope: %q", s)
	}
}

func (s CancelScope) String() string {
	if s == ScopeGlobal {
		return ScopeNameGlobal
	}
	return ScopeNameSystem
}

// Outcome describes how a Load was satisfied.
type Outcome int

const (
	// HitMemory means the in-process record matched the expected count.
	HitMemory Outcome = iota
	// HitDisk means the persisted record matched and was promoted to memory.
	HitDisk
	// Rebuilt means the folder was scanned and the result stored.
	Rebuilt
	// Partial means the scan failed part way; the files found are returned
	// but nothing was stored.
	Partial
	// Cancelled means the rebuild was cancelled or superseded; the previous
	// best-known list is returned.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case HitMemory:
		return "memory"
	case HitDisk:
		return "disk"
	case Rebuilt:
		return "rebuilt"
	case Partial:
		return "partial"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Request identifies a system's folder and how many files it should hold.
type Request struct {
	SystemName string
	Folder     string
	Patterns   []string
	// ExpectedCount comes from an independent source (e.g. a gamelist). A
	// cached record is only reused when its count equals this.
	ExpectedCount int
}

type Result struct {
	Files   []string
	Outcome Outcome
}

// Cache decides whether a system's file list can be served from memory or
// disk, or has to be rebuilt, and keeps both stores in step afterwards.
type Cache struct {
	store    Store
	scanner  Scanner
	mem      *MemoryStore
	inflight map[string]*rebuild
	latest   map[string]uint64
	commits  syncutil.KeyedMutex
	wg       sync.WaitGroup
	mu       syncutil.Mutex
	gen      uint64
	scope    CancelScope
	closed   bool
}

type rebuild struct {
	ctx    context.Context //nolint:containedctx // lifetime of one background scan
	cancel context.CancelFunc
	system string
	gen    uint64
}

type Option func(*Cache)

func WithCancelScope(scope CancelScope) Option {
	return func(c *Cache) {
		c.scope = scope
	}
}

func WithMemoryStore(mem *MemoryStore) Option {
	return func(c *Cache) {
		c.mem = mem
	}
}

// New creates a Cache. The cache owns the store and closes it on Close.
func New(store Store, scanner Scanner, opts ...Option) *Cache {
	c := &Cache{
		store:    store,
		scanner:  scanner,
		mem:      NewMemoryStore(),
		inflight: make(map[string]*rebuild),
		latest:   make(map[string]uint64),
		scope:    ScopeSystem,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scope returns the cancellation scope in use.
func (c *Cache) Scope() CancelScope {
	return c.scope
}

// Peek returns the in-memory record for a system without touching disk.
func (c *Cache) Peek(system string) (Record, bool) {
	return c.mem.Get(system)
}

// LoadSystemFiles returns the file list for a system. It never fails: any
// problem is logged and results in a stale or empty list.
func (c *Cache) LoadSystemFiles(ctx context.Context, req Request) []string {
	return c.Load(ctx, req).Files
}

// LoadSystemFilesAsync runs LoadSystemFiles in the background. The channel
// receives exactly one list and is then closed.
func (c *Cache) LoadSystemFilesAsync(ctx context.Context, req Request) <-chan []string {
	out := make(chan []string, 1)
	go func() {
		defer close(out)
		out <- c.LoadSystemFiles(ctx, req)
	}()
	return out
}

// Load is LoadSystemFiles with the outcome attached.
func (c *Cache) Load(ctx context.Context, req Request) Result {
	system := req.SystemName

	fallback, hasFallback := c.mem.Get(system)
	if hasFallback && fallback.Valid(req.ExpectedCount) {
		log.Debug().
			Str("system", system).
			Int("count", fallback.FileCount).
			Msg("file list served from memory")
		return Result{Files: fallback.FileNames, Outcome: HitMemory}
	}

	disk, err := c.store.Load(system)
	switch {
	case err == nil:
		if disk.Valid(req.ExpectedCount) {
			c.mem.Set(system, disk)
			log.Debug().
				Str("system", system).
				Int("count", disk.FileCount).
				Msg("file list served from disk cache")
			return Result{Files: disk.FileNames, Outcome: HitDisk}
		}
		log.Debug().
			Str("system", system).
			Int("cached", disk.FileCount).
			Int("expected", req.ExpectedCount).
			Msg("cached file list is stale")
		if !hasFallback {
			fallback, hasFallback = disk, true
		}
	case errors.Is(err, ErrNotCached), errors.Is(err, ErrDegraded):
		log.Debug().Err(err).Str("system", system).Msg("no usable cached file list")
	default:
		log.Warn().Err(err).Str("system", system).Msg("failed to load cached file list, rebuilding")
	}

	if !hasFallback {
		fallback = EmptyRecord(system)
	}

	return c.rebuild(ctx, req, fallback.FileNames)
}

type scanResult struct {
	err   error
	files []string
}

func (c *Cache) rebuild(ctx context.Context, req Request, fallback []string) Result {
	system := req.SystemName
	cancelled := Result{Files: fallback, Outcome: Cancelled}

	r, ok := c.begin(ctx, system)
	if !ok {
		log.Debug().Str("system", system).Msg("cache closed, skipping rebuild")
		return cancelled
	}
	defer c.finish(r)

	start := time.Now()
	done := make(chan scanResult, 1)
	go func() {
		defer c.wg.Done()
		files, err := c.scanner.Scan(r.ctx, req.Folder, req.Patterns)
		done <- scanResult{files: files, err: err}
	}()

	var res scanResult
	select {
	case res = <-done:
	case <-ctx.Done():
		log.Debug().Err(ctx.Err()).Str("system", system).Msg("caller gave up waiting for rebuild")
		return cancelled
	}

	if res.err != nil {
		if r.ctx.Err() != nil {
			log.Debug().Str("system", system).Msg("rebuild cancelled")
			return cancelled
		}

		log.Error().Err(res.err).
			Str("system", system).
			Str("folder", req.Folder).
			Int("found", len(res.files)).
			Msg("failed to enumerate system folder")
		if res.files == nil {
			res.files = []string{}
		}
		return Result{Files: res.files, Outcome: Partial}
	}

	if !c.commit(r, res.files) {
		log.Debug().Str("system", system).Msg("rebuild superseded, discarding result")
		return cancelled
	}

	log.Info().
		Str("system", system).
		Int("count", len(res.files)).
		Int("expected", req.ExpectedCount).
		Dur("took", time.Since(start)).
		Msg("rebuilt file list")

	return Result{Files: res.files, Outcome: Rebuilt}
}

func (c *Cache) scopeKey(system string) string {
	if c.scope == ScopeGlobal {
		return ""
	}
	return system
}

// begin registers a new rebuild and cancels the one it replaces.
func (c *Cache) begin(ctx context.Context, system string) (*rebuild, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, false
	}

	key := c.scopeKey(system)
	if prev, ok := c.inflight[key]; ok {
		log.Debug().
			Str("system", system).
			Str("cancelled", prev.system).
			Msg("cancelling in-flight rebuild")
		prev.cancel()
	}

	c.gen++
	rctx, cancel := context.WithCancel(ctx)
	r := &rebuild{
		ctx:    rctx,
		cancel: cancel,
		system: system,
		gen:    c.gen,
	}
	c.inflight[key] = r
	c.latest[system] = r.gen
	c.wg.Add(1)

	return r, true
}

func (c *Cache) finish(r *rebuild) {
	r.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.scopeKey(r.system)
	if c.inflight[key] == r {
		delete(c.inflight, key)
	}
}

// current reports whether r is still the newest live rebuild of its system.
func (c *Cache) current(r *rebuild) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return r.ctx.Err() == nil && c.latest[r.system] == r.gen
}

// commit stores a finished rebuild unless it was cancelled or a newer one
// has started. Commits for the same system are serialised, so a rebuild that
// passes the check always lands before any newer one can.
func (c *Cache) commit(r *rebuild, files []string) bool {
	unlock := c.commits.Lock(r.system)
	defer unlock()

	if !c.current(r) {
		return false
	}

	rec := NewRecord(r.system, files)
	c.mem.Set(r.system, rec)

	if err := c.store.Save(r.system, rec); err != nil {
		if errors.Is(err, ErrDegraded) {
			log.Debug().Str("system", r.system).Msg("cache store degraded, not persisting")
		} else {
			log.Error().Err(err).Str("system", r.system).Msg("failed to persist file list")
		}
	}

	return true
}

// Close cancels in-flight rebuilds, waits for their workers and closes the
// store. Loads after Close still serve cached records but never rebuild.
func (c *Cache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	for _, r := range c.inflight {
		r.cancel()
	}
	c.mu.Unlock()

	c.wg.Wait()

	if err := c.store.Close(); err != nil {
		return fmt.Errorf("failed to close cache store: %w", err)
	}
	return nil
}
