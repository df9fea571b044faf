// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package leveldb

import (
	"bytes"
	"os"

	"github.com/syndtr/goleveldb/leveldb"
	"gitlab.com/accumulatenetwork/vmstate/internal/logging"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue/memory"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
)

type Database struct {
	leveldb *leveldb.DB
}

var _ keyvalue.Beginner = (*Database)(nil)
var _ keyvalue.Walker = (*Database)(nil)

func OpenFile(filepath string) (*Database, error) {
	// Make sure all directories exist
	err := os.MkdirAll(filepath, 0700)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("create %q: %w", filepath, err)
	}

	db, err := leveldb.OpenFile(filepath, nil)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open %q: %w", filepath, err)
	}

	return &Database{leveldb: db}, nil
}

// Begin begins a change set.
func (d *Database) Begin(writable bool) keyvalue.ChangeSet {
	snap, err := d.leveldb.GetSnapshot()

	// Read from the snapshot
	get := func(key []byte) ([]byte, error) {
		return d.get(snap, err, key)
	}

	// Commit to the write batch
	var commit memory.CommitFunc
	if writable {
		commit = d.commit
	}

	discard := func() {
		if snap != nil {
			snap.Release()
		}
	}

	// The memory changeset caches entries in a map so Get will see values
	// updated with Put, regardless of the underlying transaction and write
	// batch behavior
	return memory.NewChangeSet(memory.ChangeSetOptions{
		Get:     get,
		Commit:  commit,
		Discard: discard,
	})
}

func (d *Database) commit(entries map[string]memory.Entry) error {
	batch := new(leveldb.Batch)
	for _, e := range entries {
		if e.Delete {
			batch.Delete(e.Key)
		} else {
			batch.Put(e.Key, e.Value)
		}
	}

	return errors.UnknownError.Wrap(d.leveldb.Write(batch, nil))
}

func (d *Database) get(snap *leveldb.Snapshot, err error, key []byte) ([]byte, error) {
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	v, err := snap.Get(key, nil)
	switch {
	case err == nil:
		return bytes.Clone(v), nil
	case errors.Is(err, leveldb.ErrNotFound):
		return nil, errors.NotFound.WithFormat("%v not found", logging.AsHex(key))
	default:
		return nil, errors.UnknownError.WithFormat("get %v: %w", logging.AsHex(key), err)
	}
}

// ForEach calls fn for each entry in key order.
func (d *Database) ForEach(fn func(key, value []byte) error) error {
	it := d.leveldb.NewIterator(nil, nil)
	defer it.Release()
	for it.Next() {
		err := fn(bytes.Clone(it.Key()), bytes.Clone(it.Value()))
		if err != nil {
			return err
		}
	}
	return errors.UnknownError.Wrap(it.Error())
}

// Close closes the underlying database.
func (d *Database) Close() error {
	return d.leveldb.Close()
}
