// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package repository

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/vmstate/internal/logging"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue/memory"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
	"gitlab.com/accumulatenetwork/vmstate/pkg/types/chain"
)

func newCache(t *testing.T, factory Factory) (*Cache, *memory.Database) {
	db := memory.New()
	logger := logging.NewTestLogger(t, "plain", "debug", false)
	return NewCache(db, factory, logger), db
}

func storeGet(t *testing.T, db keyvalue.Beginner, key string) ([]byte, error) {
	t.Helper()
	batch := db.Begin(false)
	defer batch.Discard()
	return batch.Get([]byte(key))
}

func storePut(t *testing.T, db keyvalue.Beginner, key, value string) {
	t.Helper()
	batch := db.Begin(true)
	defer batch.Discard()
	require.NoError(t, batch.Put([]byte(key), []byte(value)))
	require.NoError(t, batch.Commit())
}

func TestCacheGetMissing(t *testing.T) {
	c, _ := newCache(t, modern)
	e, err := c.Get([]byte("missing"))
	require.NoError(t, err)
	require.True(t, e.IsEmpty())
	require.Nil(t, e.Tag())

	c, _ = newCache(t, legacy)
	e, err = c.Get([]byte("missing"))
	require.NoError(t, err)
	require.True(t, e.IsEmpty())
	require.True(t, e.Tag().IsUnknown())

	// Unknown empty entries are never written
	require.Empty(t, c.Dirty())
	require.NoError(t, c.Commit())
}

func TestCacheGetLoads(t *testing.T) {
	c, db := newCache(t, modern)
	storePut(t, db, "foo", "bar")

	e, err := c.Get([]byte("foo"))
	require.NoError(t, err)
	require.Equal(t, []byte("bar"), e.Any())
	require.True(t, e.Tag().IsNormal())
	require.NotNil(t, e.Tag())

	// Get returns a copy
	e.AddTagCode(TagDirty)
	e, err = c.Get([]byte("foo"))
	require.NoError(t, err)
	require.True(t, e.Tag().IsNormal())
}

func TestCacheCreate(t *testing.T) {
	c, db := newCache(t, modern)
	require.NoError(t, c.PutBytes([]byte("foo"), []byte("bar")))

	e, err := c.Get([]byte("foo"))
	require.NoError(t, err)
	require.Equal(t, TagCreate, e.Tag().Code())
	require.Equal(t, [][]byte{[]byte("foo")}, c.Dirty())

	// Updating a created entry keeps the create flag
	require.NoError(t, c.PutBytes([]byte("foo"), []byte("baz")))
	e, err = c.Get([]byte("foo"))
	require.NoError(t, err)
	require.Equal(t, TagCreate|TagDirty, e.Tag().Code())

	require.NoError(t, c.Commit())
	v, err := storeGet(t, db, "foo")
	require.NoError(t, err)
	require.Equal(t, []byte("baz"), v)

	e, err = c.Get([]byte("foo"))
	require.NoError(t, err)
	require.True(t, e.Tag().IsNormal())
	require.Empty(t, c.Dirty())
}

func TestCacheUpdate(t *testing.T) {
	c, db := newCache(t, legacy)
	storePut(t, db, "foo", "bar")

	require.NoError(t, c.PutBytes([]byte("foo"), []byte("baz")))
	e, err := c.Get([]byte("foo"))
	require.NoError(t, err)
	require.Equal(t, TagDirty, e.Tag().Code())

	require.NoError(t, c.Commit())
	v, err := storeGet(t, db, "foo")
	require.NoError(t, err)
	require.Equal(t, []byte("baz"), v)
}

func TestCacheDelete(t *testing.T) {
	c, db := newCache(t, modern)
	storePut(t, db, "foo", "bar")

	require.NoError(t, c.Delete([]byte("foo")))
	require.Equal(t, [][]byte{[]byte("foo")}, c.Dirty())

	// The deleted entry no longer returns the stored value
	e, err := c.Get([]byte("foo"))
	require.NoError(t, err)
	require.True(t, e.IsEmpty())
	require.True(t, e.Tag().IsDelete())
	require.False(t, e.Tag().IsCreate())

	require.NoError(t, c.Commit())

	_, err = storeGet(t, db, "foo")
	require.ErrorIs(t, err, errors.NotFound)

	e, err = c.Get([]byte("foo"))
	require.NoError(t, err)
	require.True(t, e.IsEmpty())
	require.Empty(t, c.Dirty())
}

func TestCachePutNothingDeletes(t *testing.T) {
	c, db := newCache(t, modern)
	storePut(t, db, "foo", "bar")

	require.NoError(t, c.PutBytes([]byte("foo"), nil))
	require.NoError(t, c.Commit())

	_, err := storeGet(t, db, "foo")
	require.ErrorIs(t, err, errors.NotFound)
}

func TestCacheCreateThenDelete(t *testing.T) {
	c, db := newCache(t, modern)
	require.NoError(t, c.PutBytes([]byte("foo"), []byte("bar")))
	require.NoError(t, c.Delete([]byte("foo")))
	require.NoError(t, c.Commit())

	_, err := storeGet(t, db, "foo")
	require.ErrorIs(t, err, errors.NotFound)
	require.Equal(t, 0, db.Len())
}

func TestCacheDeleteThenPut(t *testing.T) {
	c, db := newCache(t, modern)
	storePut(t, db, "foo", "bar")

	require.NoError(t, c.Delete([]byte("foo")))
	require.NoError(t, c.PutBytes([]byte("foo"), []byte("baz")))
	require.NoError(t, c.Commit())

	v, err := storeGet(t, db, "foo")
	require.NoError(t, err)
	require.Equal(t, []byte("baz"), v)
}

func TestCacheDeletePutDelete(t *testing.T) {
	c, db := newCache(t, modern)
	storePut(t, db, "foo", "bar")

	require.NoError(t, c.Delete([]byte("foo")))
	require.NoError(t, c.PutBytes([]byte("foo"), []byte("baz")))

	// The store still holds the key so the put is an update
	e, err := c.Get([]byte("foo"))
	require.NoError(t, err)
	require.Equal(t, TagDirty, e.Tag().Code())

	require.NoError(t, c.Delete([]byte("foo")))
	require.NoError(t, c.Commit())

	_, err = storeGet(t, db, "foo")
	require.ErrorIs(t, err, errors.NotFound)
}

func TestCacheCreateDeleteKeepsCreate(t *testing.T) {
	c, _ := newCache(t, modern)
	require.NoError(t, c.PutBytes([]byte("foo"), []byte("bar")))
	require.NoError(t, c.Delete([]byte("foo")))

	e, err := c.Get([]byte("foo"))
	require.NoError(t, err)
	require.True(t, e.IsEmpty())
	require.Equal(t, TagCreate|TagDelete, e.Tag().Code())
}

// recordingStore is an empty store that records every commit.
type recordingStore struct {
	commits []map[string]memory.Entry
}

func (s *recordingStore) Begin(writable bool) keyvalue.ChangeSet {
	return memory.NewChangeSet(memory.ChangeSetOptions{
		Get: func(key []byte) ([]byte, error) {
			return nil, errors.NotFound.WithFormat("%x not found", key)
		},
		Commit: func(entries map[string]memory.Entry) error {
			s.commits = append(s.commits, entries)
			return nil
		},
	})
}

func TestCacheDeleteMissing(t *testing.T) {
	for _, f := range []Factory{modern, legacy} {
		store := new(recordingStore)
		c := NewCache(store, f, nil)
		require.NoError(t, c.Delete([]byte("missing")))
		require.Empty(t, c.Dirty())

		e, err := c.Get([]byte("missing"))
		require.NoError(t, err)
		require.Equal(t, f.FromBytes(nil, TagNormal).Tag(), e.Tag())

		require.NoError(t, c.Commit())
		for _, entries := range store.commits {
			require.Empty(t, entries)
		}
	}
}

func TestCacheLoggerModule(t *testing.T) {
	buf := new(bytes.Buffer)
	logger, err := logging.NewLogger(buf, "json", "debug", false)
	require.NoError(t, err)

	c := NewCache(memory.New(), modern, logger)
	_, err = c.Get([]byte("foo"))
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(buf.String(), `"module":"repository"`))
}

func TestCachePutObject(t *testing.T) {
	c, db := newCache(t, modern)
	sc := &chain.SmartContract{Name: "token", ContractAddress: []byte{0x41, 7}}
	require.NoError(t, c.PutObject([]byte("contract"), sc))

	e, err := c.Get([]byte("contract"))
	require.NoError(t, err)
	require.Same(t, sc, e.Contract().Instance())

	require.NoError(t, c.Commit())
	v, err := storeGet(t, db, "contract")
	require.NoError(t, err)
	got, err := chain.UnmarshalSmartContract(v)
	require.NoError(t, err)
	require.True(t, sc.Equal(got))

	// After a reset the contract is loaded as bytes
	c.Reset()
	e, err = c.Get([]byte("contract"))
	require.NoError(t, err)
	require.Nil(t, e.Contract())
	x, err := DecodeShape(e, ShapeContract)
	require.NoError(t, err)
	require.Equal(t, "token", x.(*chain.Contract).Instance().Name)
}

func TestCachePut(t *testing.T) {
	c, _ := newCache(t, modern)
	e := modern.FromBytes([]byte("bar"), TagDirty)
	c.Put([]byte("foo"), e)

	// The cache holds a copy
	e.SetTag(nil)
	got, err := c.Get([]byte("foo"))
	require.NoError(t, err)
	require.True(t, got.Tag().IsDirty())
}

func TestCacheDirtyIsSorted(t *testing.T) {
	c, _ := newCache(t, modern)
	for _, k := range []string{"c", "a", "b"} {
		require.NoError(t, c.PutBytes([]byte(k), []byte(k)))
	}
	_, err := c.Get([]byte("clean"))
	require.NoError(t, err)

	require.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, c.Dirty())
}

func TestCacheReset(t *testing.T) {
	c, db := newCache(t, modern)
	require.NoError(t, c.PutBytes([]byte("foo"), []byte("bar")))
	c.Reset()
	require.Empty(t, c.Dirty())
	require.NoError(t, c.Commit())
	require.Equal(t, 0, db.Len())
}

type failingStore struct{}

func (failingStore) Begin(writable bool) keyvalue.ChangeSet {
	return memory.NewChangeSet(memory.ChangeSetOptions{
		Get: func([]byte) ([]byte, error) {
			return nil, errors.InternalError.With("disk on fire")
		},
		Commit: func(map[string]memory.Entry) error {
			return errors.InternalError.With("disk on fire")
		},
	})
}

func TestCacheStoreErrors(t *testing.T) {
	c := NewCache(failingStore{}, modern, nil)
	_, err := c.Get([]byte("foo"))
	require.ErrorIs(t, err, errors.InternalError)
	require.ErrorIs(t, c.PutBytes([]byte("foo"), []byte("bar")), errors.InternalError)
	require.ErrorIs(t, c.Delete([]byte("foo")), errors.InternalError)

	c.Put([]byte("foo"), modern.FromBytes([]byte("bar"), TagCreate))
	require.ErrorIs(t, c.Commit(), errors.InternalError)

	// The failed commit leaves the entry dirty
	require.Len(t, c.Dirty(), 1)
}
