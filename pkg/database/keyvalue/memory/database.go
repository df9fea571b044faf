// Copyright 2023 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"bytes"
	"sync"

	"gitlab.com/accumulatenetwork/vmstate/internal/logging"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Database struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

var _ keyvalue.Beginner = (*Database)(nil)
var _ keyvalue.Walker = (*Database)(nil)

func New() *Database {
	return &Database{entries: map[string][]byte{}}
}

// Begin begins a change set.
func (d *Database) Begin(writable bool) keyvalue.ChangeSet {
	var commit CommitFunc
	if writable {
		commit = d.put
	}
	return NewChangeSet(ChangeSetOptions{
		Get:    d.get,
		Commit: commit,
	})
}

// Len returns the number of stored entries.
func (d *Database) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

func (d *Database) Close() error { return nil }

// ForEach calls fn for each entry in key order.
func (d *Database) ForEach(fn func(key, value []byte) error) error {
	d.mu.RLock()
	keys := maps.Keys(d.entries)
	values := make(map[string][]byte, len(keys))
	for _, k := range keys {
		values[k] = bytes.Clone(d.entries[k])
	}
	d.mu.RUnlock()

	slices.Sort(keys)
	for _, k := range keys {
		err := fn([]byte(k), values[k])
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Database) get(key []byte) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.entries[string(key)]
	if ok {
		return bytes.Clone(v), nil
	}

	// Not found
	return nil, errors.NotFound.WithFormat("%v not found", logging.AsHex(key))
}

func (d *Database) put(entries map[string]Entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for k, e := range entries {
		if e.Delete {
			delete(d.entries, k)
		} else {
			d.entries[k] = e.Value
		}
	}
	return nil
}
