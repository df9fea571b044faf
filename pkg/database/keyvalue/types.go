// Copyright 2023 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package keyvalue

// Store is a key-value store. Get returns an error matching errors.NotFound
// if the key does not exist.
type Store interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
}

// ChangeSet is a key-value change set.
type ChangeSet interface {
	Store
	Beginner

	// Commit commits pending changes.
	Commit() error

	// Discard discards pending changes.
	Discard()
}

// A Beginner can begin key-value change sets.
type Beginner interface {
	// Begin begins a transaction or sub-transaction.
	Begin(writable bool) ChangeSet
}

// A Walker can iterate over every stored entry. The iteration order is
// defined by the backend.
type Walker interface {
	ForEach(func(key, value []byte) error) error
}
