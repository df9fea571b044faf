// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package repository

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mDecodeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vmstate",
		Subsystem: "repository",
		Name:      "decode_failures",
		Help:      "Number of cached entries that could not be decoded as the requested shape",
	}, []string{"shape"})
	mCommitWrites = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vmstate",
		Subsystem: "repository",
		Name:      "commit_writes",
		Help:      "Number of entries written to storage by commits",
	})
	mCommitDeletes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vmstate",
		Subsystem: "repository",
		Name:      "commit_deletes",
		Help:      "Number of entries deleted from storage by commits",
	})
)
