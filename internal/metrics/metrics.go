// Copyright 2026 The Signature Log Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics wires the logger's counters and histograms onto the
// default Prometheus registry, registering its monitoring instruments
// once via sync.Once.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// LeavesAppended counts leaves durably inserted into the leaves
	// table.
	LeavesAppended prometheus.Counter

	// SubtreesCompleted counts subtrees promoted to the complete table.
	SubtreesCompleted prometheus.Counter

	// DbInsertLatency observes the wall-clock cost of each store
	// mutation.
	DbInsertLatency prometheus.Histogram

	registerOnce sync.Once
)

func init() {
	createMetrics()
}

func createMetrics() {
	registerOnce.Do(func() {
		LeavesAppended = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nsl",
			Name:      "leaves_appended_total",
			Help:      "Number of leaves durably appended to the log.",
		})
		SubtreesCompleted = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nsl",
			Name:      "subtrees_completed_total",
			Help:      "Number of subtrees promoted from pending to complete.",
		})
		DbInsertLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nsl",
			Name:      "db_insert_latency_seconds",
			Help:      "Latency of a single store mutation.",
			Buckets:   prometheus.DefBuckets,
		})

		prometheus.MustRegister(LeavesAppended, SubtreesCompleted, DbInsertLatency)
	})
}
