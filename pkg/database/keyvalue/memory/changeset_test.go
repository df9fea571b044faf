// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue/kvtest"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
)

func open(testing.TB) kvtest.Opener {
	// Reuse the same in-memory database each time
	db := New()
	return func() (keyvalue.Beginner, error) { return db, nil }
}

func TestSuite(t *testing.T) {
	kvtest.TestSuite(t, open(t))
}

func TestDiscardDropsChanges(t *testing.T) {
	db := New()
	batch := db.Begin(true)
	require.NoError(t, batch.Put([]byte("foo"), []byte("bar")))
	batch.Discard()
	batch.Discard()

	require.Equal(t, 0, db.Len())
	require.ErrorIs(t, batch.Put([]byte("foo"), []byte("bar")), errors.NotAllowed)
}

func TestGetReturnsCopy(t *testing.T) {
	db := New()
	batch := db.Begin(true)
	require.NoError(t, batch.Put([]byte("foo"), []byte("bar")))
	v, err := batch.Get([]byte("foo"))
	require.NoError(t, err)
	v[0] = 'x'

	v, err = batch.Get([]byte("foo"))
	require.NoError(t, err)
	require.Equal(t, "bar", string(v))
}

func BenchmarkCommit(b *testing.B) {
	kvtest.BenchmarkCommit(b, open(b))
}

func BenchmarkReadRandom(b *testing.B) {
	kvtest.BenchmarkReadRandom(b, open(b))
}
