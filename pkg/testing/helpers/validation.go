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
	"testing"

	"github.com/ZaparooProject/zaparoo-gamecache/pkg/gamecache"
	"github.com/stretchr/testify/require"
)

// AssertValidRecord checks the invariants every stored record must hold.
// Use this on records read back from a store or the memory cache.
func AssertValidRecord(t *testing.T, rec gamecache.Record, system string) {
	t.Helper()

	require.Equal(t, system, rec.SystemName, "record belongs to another system")

	// nil lists mean the record was never initialised
	require.NotNil(t, rec.FileNames, "Record.FileNames must not be nil")
	require.Len(t, rec.FileNames, rec.FileCount,
		"Record.FileCount must equal the number of file names")

	for i, name := range rec.FileNames {
		require.NotEmpty(t, name, "Record.FileNames[%d] is empty", i)
	}
}

// AssertValidRecordOrEmpty validates rec if it has files, otherwise checks
// it is a well-formed empty record.
func AssertValidRecordOrEmpty(t *testing.T, rec gamecache.Record, system string) {
	t.Helper()

	if rec.FileCount == 0 {
		require.Equal(t, gamecache.EmptyRecord(system), rec)
		return
	}
	AssertValidRecord(t, rec, system)
}
