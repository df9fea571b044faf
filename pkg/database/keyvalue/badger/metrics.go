// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package badger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opPut    = "put"
	opDelete = "delete"
)

const (
	gcReclaimed = "reclaimed"
	gcSkipped   = "skipped"
	gcFailed    = "failed"
)

var (
	mOpenStores = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "vmstate",
		Subsystem: "badger",
		Name:      "open_stores",
		Help:      "Number of open state stores",
	})

	mOpenChangeSets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "vmstate",
		Subsystem: "badger",
		Name:      "open_change_sets",
		Help:      "Number of change sets that have not been committed or discarded",
	})

	mCommitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "vmstate",
		Subsystem: "badger",
		Name:      "commit_seconds",
		Help:      "Time taken to flush a change set to disk",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
	})

	// Labeled by opPut or opDelete
	mCommittedEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vmstate",
		Subsystem: "badger",
		Name:      "committed_entries_total",
		Help:      "Number of state entries written or deleted by commits",
	}, []string{"op"})

	// Labeled by gcReclaimed, gcSkipped, or gcFailed
	mValueLogGC = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vmstate",
		Subsystem: "badger",
		Name:      "value_log_gc_total",
		Help:      "Number of value log garbage collection passes by result",
	}, []string{"result"})
)
