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

// Package watcher reports changes to system folders so their file lists can
// be refreshed.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Folder maps a watched directory to the system it holds.
type Folder struct {
	System string
	Path   string
}

// Watcher watches system folders and calls back once per system after a
// burst of create, remove or rename events settles.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce *Debouncer
	folders  map[string][]string
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New starts watching folders. Folders that can't be watched are logged and
// skipped; an error is only returned if the watcher itself can't start.
func New(
	folders []Folder,
	delay time.Duration,
	clock clockwork.Clock,
	onChange func(system string),
) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		debounce: NewDebouncer(clock, delay, onChange),
		folders:  make(map[string][]string),
		stopChan: make(chan struct{}),
	}

	for _, f := range folders {
		path := filepath.Clean(f.Path)
		if _, ok := w.folders[path]; !ok {
			if err := fw.Add(path); err != nil {
				log.Warn().Err(err).
					Str("system", f.System).
					Str("folder", path).
					Msg("failed to watch system folder")
				continue
			}
		}
		w.folders[path] = append(w.folders[path], f.System)
	}

	w.wg.Add(1)
	go w.watchFileSystemEvents()

	log.Debug().Int("folders", len(w.folders)).Msg("started watching system folders")

	return w, nil
}

// Watching returns the number of folders being watched.
func (w *Watcher) Watching() int {
	return len(w.folders)
}

// Close stops the watcher and waits for pending callbacks.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		err = w.watcher.Close()
		w.wg.Wait()
		w.debounce.Stop()
	})
	if err != nil {
		return fmt.Errorf("failed to close fsnotify watcher: %w", err)
	}
	return nil
}

func (w *Watcher) watchFileSystemEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			systems, ok := w.folders[filepath.Dir(event.Name)]
			if !ok {
				continue
			}
			for _, system := range systems {
				log.Debug().
					Str("system", system).
					Str("path", event.Name).
					Str("op", event.Op.String()).
					Msg("system folder changed")
				w.debounce.Trigger(system)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("fsnotify error")
		}
	}
}
