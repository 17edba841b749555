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

import "github.com/ZaparooProject/zaparoo-gamecache/pkg/helpers/syncutil"

// MemoryStore holds the latest known record per system for the lifetime of
// the process.
type MemoryStore struct {
	records map[string]Record
	mu      syncutil.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
	}
}

// Get returns a copy of the stored record.
func (m *MemoryStore) Get(system string) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[system]
	if !ok {
		return Record{}, false
	}
	rec.FileNames = rec.Files()
	return rec, true
}

// Set replaces whatever is stored for the system.
func (m *MemoryStore) Set(system string, rec Record) {
	stored := NewRecord(system, rec.FileNames)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[system] = stored
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
