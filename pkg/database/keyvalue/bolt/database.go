// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package bolt

import (
	"bytes"
	"os"
	"path/filepath"

	"gitlab.com/accumulatenetwork/vmstate/internal/logging"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue/memory"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// DefaultBucket is the bucket entries are stored in unless WithBucket is
// used.
const DefaultBucket = "state"

type Database struct {
	opts
	bolt *bolt.DB
}

var _ keyvalue.Beginner = (*Database)(nil)
var _ keyvalue.Walker = (*Database)(nil)

type opts struct {
	bucket []byte
}

type Option func(*opts) error

// WithBucket stores entries in the named bucket.
func WithBucket(name string) Option {
	return func(o *opts) error {
		if name == "" {
			return errors.BadRequest.With("bucket name is empty")
		}
		o.bucket = []byte(name)
		return nil
	}
}

func Open(file string, o ...Option) (*Database, error) {
	d := new(Database)
	d.bucket = []byte(DefaultBucket)
	var err error
	for _, o := range o {
		err = o(&d.opts)
		if err != nil {
			return nil, errors.UnknownError.Wrap(err)
		}
	}

	err = os.MkdirAll(filepath.Dir(file), 0700)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("create %q: %w", filepath.Dir(file), err)
	}

	// Open
	d.bolt, err = bolt.Open(file, 0600, nil)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open %q: %w", file, err)
	}

	return d, nil
}

// Begin begins a change set.
func (d *Database) Begin(writable bool) keyvalue.ChangeSet {
	// Use a read-only transaction for reading
	rd, err := d.bolt.Begin(false)

	// Discard the transaction
	discard := func() {
		if rd != nil {
			_ = rd.Rollback()
		}
	}

	// Read from the transaction
	get := func(key []byte) ([]byte, error) {
		return d.get(rd, err, key)
	}

	// Commit to the write batch
	var commit memory.CommitFunc
	if writable {
		commit = func(entries map[string]memory.Entry) error {
			return d.commit(rd, entries)
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

func (d *Database) get(txn *bolt.Tx, err error, key []byte) ([]byte, error) {
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	b := txn.Bucket(d.bucket)
	if b == nil {
		return nil, errors.NotFound.WithFormat("%v not found", logging.AsHex(key))
	}

	v := b.Get(key)
	if v == nil {
		return nil, errors.NotFound.WithFormat("%v not found", logging.AsHex(key))
	}

	// Bolt's values are only valid for the life of the transaction
	return bytes.Clone(v), nil
}

func (d *Database) commit(rd *bolt.Tx, entries map[string]memory.Entry) error {
	// Discard the read transaction to unlock the database
	if rd != nil {
		_ = rd.Rollback()
	}

	err := d.bolt.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(d.bucket)
		if err != nil {
			return err
		}

		for _, e := range entries {
			if e.Delete {
				err = b.Delete(e.Key)
			} else {
				err = b.Put(e.Key, e.Value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	return errors.UnknownError.Wrap(err)
}

// ForEach calls fn for each entry in key order.
func (d *Database) ForEach(fn func(key, value []byte) error) error {
	return d.bolt.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(d.bucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			return fn(bytes.Clone(k), bytes.Clone(v))
		})
	})
}

func (d *Database) Close() error {
	return d.bolt.Close()
}
