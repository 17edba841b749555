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
	"sync"
	"time"

	"github.com/ZaparooProject/zaparoo-gamecache/pkg/helpers/syncutil"
	"github.com/jonboulle/clockwork"
)

// Debouncer coalesces bursts of triggers per key. The callback runs once a
// key has been quiet for the delay.
type Debouncer struct {
	clock   clockwork.Clock
	fire    func(key string)
	pending map[string]pendingFire
	wg      sync.WaitGroup
	delay   time.Duration
	seq     uint64
	mu      syncutil.Mutex
	stopped bool
}

type pendingFire struct {
	timer clockwork.Timer
	seq   uint64
}

func NewDebouncer(clock clockwork.Clock, delay time.Duration, fire func(key string)) *Debouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Debouncer{
		clock:   clock,
		fire:    fire,
		delay:   delay,
		pending: make(map[string]pendingFire),
	}
}

// Trigger (re)starts the quiet period for key.
func (d *Debouncer) Trigger(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if p, ok := d.pending[key]; ok && p.timer.Stop() {
		d.wg.Done()
	}

	d.seq++
	seq := d.seq
	d.wg.Add(1)
	timer := d.clock.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		p, ok := d.pending[key]
		if d.stopped || !ok || p.seq != seq {
			d.mu.Unlock()
			return
		}
		delete(d.pending, key)
		d.mu.Unlock()

		d.fire(key)
	})
	d.pending[key] = pendingFire{timer: timer, seq: seq}
}

// Pending returns the number of keys waiting to fire.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Stop drops pending keys and waits for running callbacks to return.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	for key, p := range d.pending {
		if p.timer.Stop() {
			d.wg.Done()
		}
		delete(d.pending, key)
	}
	d.mu.Unlock()

	d.wg.Wait()
}
