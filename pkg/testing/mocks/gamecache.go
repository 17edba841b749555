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

package mocks

import (
	"context"

	"github.com/ZaparooProject/zaparoo-gamecache/pkg/gamecache"
	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock for gamecache.Store.
//
// Example:
//
//	store := &MockStore{}
//	store.On("Load", "NES").Return(gamecache.EmptyRecord("NES"), gamecache.ErrNotCached)
//	store.On("Save", "NES", mock.Anything).Return(nil)
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Path(system string) string {
	args := m.Called(system)
	return args.String(0)
}

func (m *MockStore) Exists(system string) bool {
	args := m.Called(system)
	return args.Bool(0)
}

func (m *MockStore) Load(system string) (gamecache.Record, error) {
	args := m.Called(system)
	rec, ok := args.Get(0).(gamecache.Record)
	if !ok {
		rec = gamecache.EmptyRecord(system)
	}
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return rec, args.Error(1)
}

func (m *MockStore) Save(system string, rec gamecache.Record) error {
	args := m.Called(system, rec)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return args.Error(0)
}

// MockScanner is a testify mock for gamecache.Scanner.
type MockScanner struct {
	mock.Mock
}

func (m *MockScanner) Scan(ctx context.Context, folder string, patterns []string) ([]string, error) {
	args := m.Called(ctx, folder, patterns)
	files, _ := args.Get(0).([]string)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return files, args.Error(1)
}
