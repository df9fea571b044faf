// Copyright 2023 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"bytes"
	"sync"

	"gitlab.com/accumulatenetwork/vmstate/internal/logging"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
)

// Entry is a pending write or delete.
type Entry struct {
	Key    []byte
	Value  []byte
	Delete bool
}

type GetFunc func(key []byte) ([]byte, error)
type CommitFunc func(map[string]Entry) error

type ChangeSetOptions struct {
	Get     GetFunc
	Commit  CommitFunc
	Discard func()
}

// ChangeSet buffers writes in a map so Get sees values updated with Put,
// regardless of the behavior of the underlying store. A change set without a
// commit function is read-only.
type ChangeSet struct {
	opts    ChangeSetOptions
	mu      sync.RWMutex
	entries map[string]Entry
	done    bool
}

var _ keyvalue.ChangeSet = (*ChangeSet)(nil)

func NewChangeSet(opts ChangeSetOptions) *ChangeSet {
	c := new(ChangeSet)
	c.opts = opts
	c.entries = map[string]Entry{}
	return c
}

// Begin begins a nested change set. Committing it writes to this change set.
func (c *ChangeSet) Begin(writable bool) keyvalue.ChangeSet {
	var commit CommitFunc
	if writable {
		commit = c.putAll
	}
	return NewChangeSet(ChangeSetOptions{
		Get:    c.Get,
		Commit: commit,
	})
}

func (c *ChangeSet) Get(key []byte) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[string(key)]
	c.mu.RUnlock()

	switch {
	case ok && e.Delete:
		return nil, errors.NotFound.WithFormat("%v not found", logging.AsHex(key))
	case ok:
		return bytes.Clone(e.Value), nil
	case c.opts.Get == nil:
		return nil, errors.NotFound.WithFormat("%v not found", logging.AsHex(key))
	}

	v, err := c.opts.Get(key)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return v, nil
}

func (c *ChangeSet) Put(key, value []byte) error {
	return c.put(Entry{Key: bytes.Clone(key), Value: bytes.Clone(value)})
}

func (c *ChangeSet) Delete(key []byte) error {
	return c.put(Entry{Key: bytes.Clone(key), Delete: true})
}

func (c *ChangeSet) put(e Entry) error {
	if c.opts.Commit == nil {
		return errors.NotAllowed.With("change set is not writable")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return errors.NotAllowed.With("change set has been committed or discarded")
	}
	c.entries[string(e.Key)] = e
	return nil
}

func (c *ChangeSet) putAll(entries map[string]Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return errors.NotAllowed.With("change set has been committed or discarded")
	}
	for k, e := range entries {
		c.entries[k] = e
	}
	return nil
}

// Commit passes the pending changes to the commit function and discards the
// change set.
func (c *ChangeSet) Commit() error {
	if c.opts.Commit == nil {
		return errors.NotAllowed.With("change set is not writable")
	}

	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return errors.NotAllowed.With("change set has been committed or discarded")
	}
	entries := c.entries
	c.mu.Unlock()

	err := c.opts.Commit(entries)
	c.Discard()
	return errors.UnknownError.Wrap(err)
}

// Discard releases the change set. Discard may be called more than once.
func (c *ChangeSet) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}
	c.done = true
	c.entries = nil
	if c.opts.Discard != nil {
		c.opts.Discard()
	}
}
