// Copyright 2023 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package kvtest

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
)

type Opener = func() (keyvalue.Beginner, error)

type closableDb struct {
	keyvalue.Beginner
	t      testing.TB
	closed bool
}

func (c *closableDb) Close() {
	if c.closed {
		return
	}
	c.closed = true

	if d, ok := c.Beginner.(io.Closer); ok {
		require.NoError(c.t, d.Close())
	}
}

func openDb(t testing.TB, open Opener) *closableDb {
	db, err := open()
	require.NoError(t, err)
	c := &closableDb{db, t, false}
	t.Cleanup(c.Close)
	return c
}

func key(i int) []byte {
	return []byte(fmt.Sprintf("answer/%d", i))
}

func value(i int) []byte {
	return []byte(fmt.Sprintf("%x this much data ", i))
}

// TestSuite runs every test in the suite. open must return a database that
// persists across calls.
func TestSuite(t *testing.T, open Opener) {
	t.Run("Database", func(t *testing.T) { TestDatabase(t, open) })
	t.Run("SubBatch", func(t *testing.T) { TestSubBatch(t, open) })
	t.Run("Delete", func(t *testing.T) { TestDelete(t, open) })
	t.Run("ReadOnly", func(t *testing.T) { TestReadOnly(t, open) })
}

func TestDatabase(t *testing.T, open Opener) {
	const N = 1000

	// Open and write changes
	db := openDb(t, open)

	batch := db.Begin(true)
	defer batch.Discard()

	// Read when nothing exists
	_, err := batch.Get([]byte("missing"))
	require.ErrorIs(t, err, errors.NotFound)

	// Write
	for i := 0; i < N; i++ {
		require.NoError(t, batch.Put(key(i), value(i)), "Put")
	}

	// Commit
	require.NoError(t, batch.Commit())

	// Verify with a new batch
	batch = db.Begin(false)
	defer batch.Discard()

	for i := 0; i < N; i++ {
		val, err := batch.Get(key(i))
		require.NoError(t, err, "Get")
		require.Equal(t, value(i), val)
	}

	batch.Discard()

	// Verify with a fresh instance
	db.Close()
	db = openDb(t, open)

	batch = db.Begin(false)
	defer batch.Discard()

	for i := 0; i < N; i++ {
		val, err := batch.Get(key(i))
		require.NoError(t, err, "Get")
		require.Equal(t, value(i), val)
	}
}

func TestSubBatch(t *testing.T, open Opener) {
	db := openDb(t, open)

	batch := db.Begin(true)
	defer batch.Discard()
	sub := batch.Begin(true)
	defer sub.Discard()

	for i := 0; i < 100; i++ {
		require.NoError(t, sub.Put(key(i), value(i)), "Put")
	}

	// Commit and begin a new sub-batch
	require.NoError(t, sub.Commit())
	sub = batch.Begin(true)
	defer sub.Discard()

	for i := 0; i < 100; i++ {
		val, err := sub.Get(key(i))
		require.NoError(t, err, "Get")
		require.Equal(t, value(i), val)
	}
}

func TestDelete(t *testing.T, open Opener) {
	db := openDb(t, open)

	// Write a value
	batch := db.Begin(true)
	defer batch.Discard()
	require.NoError(t, batch.Put([]byte("foo"), []byte("bar")))
	require.NoError(t, batch.Commit())

	// Delete it
	batch = db.Begin(true)
	defer batch.Discard()
	require.NoError(t, batch.Delete([]byte("foo")))

	// Verify the pending delete is visible
	_, err := batch.Get([]byte("foo"))
	require.ErrorIs(t, err, errors.NotFound)
	require.NoError(t, batch.Commit())

	// Verify it is gone
	batch = db.Begin(false)
	defer batch.Discard()
	_, err = batch.Get([]byte("foo"))
	require.ErrorIs(t, err, errors.NotFound)
}

func TestReadOnly(t *testing.T, open Opener) {
	db := openDb(t, open)

	batch := db.Begin(false)
	defer batch.Discard()
	require.ErrorIs(t, batch.Put([]byte("foo"), []byte("bar")), errors.NotAllowed)
	require.ErrorIs(t, batch.Commit(), errors.NotAllowed)
}
