// Copyright 2023 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package badger

import (
	"github.com/dgraph-io/badger"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
)

var _ keyvalue.Walker = (*Database)(nil)

// ForEach calls fn for each entry in key order.
func (d *Database) ForEach(fn func(key, value []byte) error) error {
	l, err := d.lock(false)
	if err != nil {
		return err
	}
	defer l.Unlock()

	return d.badger.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			v, err := item.ValueCopy(nil)
			if err != nil {
				return errors.UnknownError.Wrap(err)
			}
			err = fn(item.KeyCopy(nil), v)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
