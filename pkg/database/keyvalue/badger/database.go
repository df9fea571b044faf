// Copyright 2023 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package badger

import (
	"os"
	"sync"
	"time"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/dgraph-io/badger"
	"gitlab.com/accumulatenetwork/vmstate/internal/logging"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue/memory"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
)

// TruncateBadger controls whether Badger is configured to truncate corrupted
// data. If the node is terminated abruptly, setting this may be necessary to
// recover the state of the system.
var TruncateBadger = false

// GCInterval is how often value log garbage collection runs.
var GCInterval = time.Hour

type Database struct {
	opts
	badger *badger.DB
	ready  bool
	mu     sync.RWMutex
	done   chan struct{}
}

var _ keyvalue.Beginner = (*Database)(nil)

type opts struct {
	logger log.Logger
}

type Option func(*opts) error

// WithLogger routes Badger's log messages to the logger.
func WithLogger(logger log.Logger) Option {
	return func(o *opts) error {
		o.logger = logger
		return nil
	}
}

func New(filepath string, o ...Option) (*Database, error) {
	// Make sure all directories exist
	err := os.MkdirAll(filepath, 0700)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open badger: create %q: %w", filepath, err)
	}

	d := new(Database)
	for _, o := range o {
		err = o(&d.opts)
		if err != nil {
			return nil, errors.UnknownError.Wrap(err)
		}
	}

	opts := badger.DefaultOptions(filepath)
	opts = opts.WithLogger(badgerLogger{logging.OptionalLogger{L: d.logger}})

	// Truncate corrupted data
	if TruncateBadger {
		opts = opts.WithTruncate(true)
	}

	// Open Badger
	d.badger, err = badger.Open(opts)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open badger: %w", err)
	}

	d.ready = true
	d.done = make(chan struct{})
	mOpenStores.Inc()

	go d.gc()

	return d, nil
}

// Begin begins a change set.
func (d *Database) Begin(writable bool) keyvalue.ChangeSet {
	// Use a read-only transaction for reading
	rd := d.badger.NewTransaction(false)
	mOpenChangeSets.Inc()

	// Read from the transaction
	get := func(key []byte) ([]byte, error) {
		item, err := rd.Get(key)
		switch {
		case err == nil:
			// Ok
		case errors.Is(err, badger.ErrKeyNotFound):
			return nil, errors.NotFound.WithFormat("%v not found", logging.AsHex(key))
		default:
			return nil, errors.UnknownError.WithFormat("get %v: %w", logging.AsHex(key), err)
		}

		v, err := item.ValueCopy(nil)
		if err != nil {
			return nil, errors.UnknownError.WithFormat("get %v: %w", logging.AsHex(key), err)
		}
		return v, nil
	}

	// Commit to the write batch
	var commit memory.CommitFunc
	if writable {
		commit = d.commit
	}

	// Discard the transaction
	discard := func() {
		rd.Discard()
		mOpenChangeSets.Dec()
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

func (d *Database) commit(entries map[string]memory.Entry) error {
	l, err := d.lock(false)
	if err != nil {
		return err
	}
	defer l.Unlock()

	start := time.Now()

	// Use a write batch for writing to work around Badger's limitations
	wr := d.badger.NewWriteBatch()

	var puts, deletes int
	for _, e := range entries {
		if e.Delete {
			err = wr.Delete(e.Key)
			deletes++
		} else {
			err = wr.Set(e.Key, e.Value)
			puts++
		}
		if err != nil {
			wr.Cancel()
			return errors.UnknownError.WithFormat("commit %v: %w", logging.AsHex(e.Key), err)
		}
	}

	err = wr.Flush()
	if err != nil {
		return errors.UnknownError.WithFormat("flush: %w", err)
	}

	mCommitSeconds.Observe(time.Since(start).Seconds())
	mCommittedEntries.WithLabelValues(opPut).Add(float64(puts))
	mCommittedEntries.WithLabelValues(opDelete).Add(float64(deletes))
	return nil
}

// Close closes the underlying database.
func (d *Database) Close() error {
	l, err := d.lock(true)
	if err != nil {
		return err
	}
	defer l.Unlock()

	d.ready = false
	close(d.done)
	mOpenStores.Dec()
	return d.badger.Close()
}

func (d *Database) gc() {
	tick := time.NewTicker(GCInterval)
	defer tick.Stop()

	for {
		select {
		case <-d.done:
			return
		case <-tick.C:
		}

		// Still open?
		l, err := d.lock(false)
		if err != nil {
			return
		}

		// Run GC if 50% space could be reclaimed
		err = d.badger.RunValueLogGC(0.5)
		switch {
		case err == nil:
			mValueLogGC.WithLabelValues(gcReclaimed).Inc()
		case errors.Is(err, badger.ErrNoRewrite):
			mValueLogGC.WithLabelValues(gcSkipped).Inc()
		default:
			mValueLogGC.WithLabelValues(gcFailed).Inc()
			logging.OptionalLogger{L: d.logger}.Error("Badger GC failed", "error", err, "module", "badger")
		}

		// Release the lock
		l.Unlock()
	}
}

// lock acquires a lock on the ready mutex and checks for readiness. This
// prevents races between Get/Put and Close.
func (d *Database) lock(closing bool) (sync.Locker, error) {
	var l sync.Locker = &d.mu
	if !closing {
		l = d.mu.RLocker()
	}

	l.Lock()
	if !d.ready {
		l.Unlock()
		return nil, errors.NotReady.With("database is closed")
	}

	return l, nil
}
