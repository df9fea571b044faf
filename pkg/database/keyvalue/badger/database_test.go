// Copyright 2023 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package badger

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/vmstate/internal/logging"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue/kvtest"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
)

func newOpener(t testing.TB) kvtest.Opener {
	path := t.TempDir()
	logger := logging.NewTestLogger(t, "plain", "error", false)
	return func() (keyvalue.Beginner, error) {
		return New(path, WithLogger(logger))
	}
}

func TestSuite(t *testing.T) {
	kvtest.TestSuite(t, newOpener(t))
}

func TestClosedDatabase(t *testing.T) {
	db, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	require.ErrorIs(t, db.Close(), errors.NotReady)
}

func TestCommitMetrics(t *testing.T) {
	db, err := New(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	puts := mCommittedEntries.WithLabelValues(opPut)
	deletes := mCommittedEntries.WithLabelValues(opDelete)
	putsBefore, deletesBefore := testutil.ToFloat64(puts), testutil.ToFloat64(deletes)
	openBefore := testutil.ToFloat64(mOpenChangeSets)

	batch := db.Begin(true)
	require.Equal(t, openBefore+1, testutil.ToFloat64(mOpenChangeSets))
	require.NoError(t, batch.Put([]byte("foo"), []byte("bar")))
	require.NoError(t, batch.Put([]byte("baz"), []byte("bat")))
	require.NoError(t, batch.Delete([]byte("qux")))
	require.NoError(t, batch.Commit())

	require.Equal(t, putsBefore+2, testutil.ToFloat64(puts))
	require.Equal(t, deletesBefore+1, testutil.ToFloat64(deletes))
	require.Equal(t, openBefore, testutil.ToFloat64(mOpenChangeSets))
}

func BenchmarkCommit(b *testing.B) {
	kvtest.BenchmarkCommit(b, newOpener(b))
}

func BenchmarkReadRandom(b *testing.B) {
	kvtest.BenchmarkReadRandom(b, newOpener(b))
}
