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
	"fmt"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	// BoltFileName is the database file used by BoltStore inside the cache dir.
	BoltFileName = "gamecache.db"

	bucketSystems = "systems"
)

// BoltStore keeps every system's record in a single bbolt database, keyed by
// system name. Values use the same encoding as FileStore.
type BoltStore struct {
	db   *bolt.DB
	path string
}

// OpenBoltStore opens or creates the database at path. Unlike FileStore this
// returns an error; callers that can't open it fall back to a FileStore.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSystems))
		if err != nil {
			return fmt.Errorf("failed to create bucket %q: %w", bucketSystems, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltStore{db: db, path: path}, nil
}

// Path returns the database file with the system as a fragment, since all
// systems share one file.
func (s *BoltStore) Path(system string) string {
	return filepath.Clean(s.path) + "#" + system
}

func (s *BoltStore) Exists(system string) bool {
	found := false
	_ = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSystems))
		found = b != nil && b.Get([]byte(system)) != nil
		return nil
	})
	return found
}

func (s *BoltStore) Load(system string) (Record, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSystems))
		if b == nil {
			return fmt.Errorf("bucket %q does not exist", bucketSystems)
		}
		v := b.Get([]byte(system))
		if v != nil {
			// bolt values are only valid inside the transaction
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return EmptyRecord(system), fmt.Errorf("failed to read %s from bolt: %w", system, err)
	}
	if data == nil {
		return EmptyRecord(system), ErrNotCached
	}

	rec, err := Decode(data)
	if err != nil {
		return EmptyRecord(system), fmt.Errorf("bolt record %s: %w", system, err)
	}
	rec.SystemName = system

	return rec, nil
}

func (s *BoltStore) Save(system string, rec Record) error {
	data, err := Encode(rec)
	if err != nil {
		return &EncodeOrWriteError{System: system, Path: s.Path(system), Err: err}
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSystems))
		if b == nil {
			return fmt.Errorf("bucket %q does not exist", bucketSystems)
		}
		return b.Put([]byte(system), data)
	})
	if err != nil {
		return &EncodeOrWriteError{System: system, Path: s.Path(system), Err: err}
	}

	return nil
}

func (s *BoltStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close bolt database: %w", err)
	}
	return nil
}
