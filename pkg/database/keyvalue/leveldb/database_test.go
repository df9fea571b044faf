// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package leveldb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue/kvtest"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
)

func open(t testing.TB) kvtest.Opener {
	path := t.TempDir()
	return func() (keyvalue.Beginner, error) {
		return OpenFile(path)
	}
}

func TestSuite(t *testing.T) {
	kvtest.TestSuite(t, open(t))
}

func TestForEachStopsOnError(t *testing.T) {
	db, err := OpenFile(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	batch := db.Begin(true)
	require.NoError(t, batch.Put([]byte("a"), []byte("1")))
	require.NoError(t, batch.Put([]byte("b"), []byte("2")))
	require.NoError(t, batch.Commit())

	var n int
	err = db.ForEach(func(k, v []byte) error {
		n++
		return errors.Conflict.With("stop")
	})
	require.ErrorIs(t, err, errors.Conflict)
	require.Equal(t, 1, n)
}
