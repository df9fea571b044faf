// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package repository

import (
	"sync"

	"github.com/cometbft/cometbft/libs/log"
	"gitlab.com/accumulatenetwork/vmstate/internal/logging"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Cache holds entries loaded from or destined for a key-value store. Entries
// handed out by Get are copies; changes must be written back with Put.
type Cache struct {
	factory Factory
	store   keyvalue.Beginner
	logger  logging.OptionalLogger

	mu      sync.Mutex
	entries map[string]*Entry
}

func NewCache(store keyvalue.Beginner, factory Factory, logger log.Logger) *Cache {
	c := new(Cache)
	c.factory = factory
	c.store = store
	c.logger.Set(logger, "module", "repository")
	c.entries = map[string]*Entry{}
	return c
}

// Factory returns the factory the cache builds entries with.
func (c *Cache) Factory() Factory { return c.factory }

// Get returns a copy of the cached entry, loading it from the store if
// necessary. A key that is not in the store yields an empty entry.
func (c *Cache) Get(key []byte) (*Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.load(key)
	if err != nil {
		return nil, err
	}
	return e.Copy(), nil
}

func (c *Cache) load(key []byte) (*Entry, error) {
	if e, ok := c.entries[string(key)]; ok {
		return e, nil
	}

	batch := c.store.Begin(false)
	defer batch.Discard()

	v, err := batch.Get(key)
	switch {
	case err == nil:
		// Ok
	case errors.Is(err, errors.NotFound):
		v = nil
	default:
		return nil, errors.UnknownError.WithFormat("load %v: %w", logging.AsHex(key), err)
	}

	e := c.factory.FromBytes(v, TagNormal)
	c.logger.Debug("Loaded entry", "key", logging.AsHex(key), "entry", e)
	c.entries[string(key)] = e
	return e, nil
}

// Put caches a copy of the entry as is.
func (c *Cache) Put(key []byte, e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[string(key)] = e.Copy()
}

// PutBytes replaces the entry's payload with the data. The entry is marked
// create if the key held nothing and dirty otherwise.
func (c *Cache) PutBytes(key, data []byte) error {
	return c.update(key, func(code TagCode) *Entry {
		return c.factory.FromBytes(data, code)
	})
}

// PutObject replaces the entry's payload with the object. The entry is
// marked create if the key held nothing and dirty otherwise.
func (c *Cache) PutObject(key []byte, obj Object) error {
	return c.update(key, func(code TagCode) *Entry {
		return c.factory.FromObject(obj, code)
	})
}

func (c *Cache) update(key []byte, build func(TagCode) *Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	old, err := c.load(key)
	if err != nil {
		return err
	}

	code := TagCreate
	if inStore(old) {
		code = TagDirty
	}

	e := build(code)
	if e.IsEmpty() {
		// Writing nothing is a delete
		c.delete(key, old)
		return nil
	}
	if old.Tag().IsCreate() {
		e.AddTagCode(TagCreate)
	}
	c.entries[string(key)] = e
	return nil
}

// inStore returns true if the store holds a value for the entry's key, as far
// as the cache knows.
func inStore(e *Entry) bool {
	if !e.IsEmpty() {
		return !e.Tag().IsCreate()
	}
	return e.Tag().IsDelete() && !e.Tag().IsCreate()
}

// Delete replaces the entry with an empty entry marked deleted. Deleting an
// entry that is already empty does nothing.
func (c *Cache) Delete(key []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	old, err := c.load(key)
	if err != nil {
		return err
	}
	c.delete(key, old)
	return nil
}

func (c *Cache) delete(key []byte, old *Entry) {
	if old.IsEmpty() {
		return
	}

	e := c.factory.FromBytes(nil, TagNormal)
	e.SetTag(NewTag(TagDelete | old.Tag().Code()&TagCreate))
	c.entries[string(key)] = e
}

// Dirty returns the keys of entries that must be committed, in order.
func (c *Cache) Dirty() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	var keys [][]byte
	for _, k := range c.sortedKeys() {
		if c.entries[k].Tag().ShouldCommit() {
			keys = append(keys, []byte(k))
		}
	}
	return keys
}

func (c *Cache) sortedKeys() []string {
	keys := maps.Keys(c.entries)
	slices.Sort(keys)
	return keys
}

// Commit writes pending changes to the store in a single change set. Once
// the change set is committed, written entries are marked normal and deleted
// entries are replaced by empty entries.
func (c *Cache) Commit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	batch := c.store.Begin(true)
	defer batch.Discard()

	var written, deleted []string
	for _, k := range c.sortedKeys() {
		e := c.entries[k]
		tag := e.Tag()
		if !tag.ShouldCommit() {
			continue
		}

		var err error
		switch {
		case tag.IsDelete() || e.IsEmpty():
			// Skip entries that were created and deleted without ever being
			// stored
			if tag.IsCreate() {
				deleted = append(deleted, k)
				continue
			}
			err = batch.Delete([]byte(k))
			deleted = append(deleted, k)

		case e.Object() != nil:
			var b []byte
			b, err = e.Object().MarshalBinary()
			if err != nil {
				return errors.EncodingError.WithFormat("marshal %v: %w", logging.AsHex(k), err)
			}
			err = batch.Put([]byte(k), b)
			written = append(written, k)

		default:
			err = batch.Put([]byte(k), e.Any())
			written = append(written, k)
		}
		if err != nil {
			return errors.UnknownError.WithFormat("commit %v: %w", logging.AsHex(k), err)
		}
	}

	err := batch.Commit()
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	for _, k := range written {
		c.entries[k].SetTag(NewTag(TagNormal))
	}
	for _, k := range deleted {
		c.entries[k] = c.factory.FromBytes(nil, TagNormal)
	}

	mCommitWrites.Add(float64(len(written)))
	mCommitDeletes.Add(float64(len(deleted)))
	c.logger.Debug("Committed", "written", len(written), "deleted", len(deleted))
	return nil
}

// Reset drops every cached entry, including uncommitted changes.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]*Entry{}
}
