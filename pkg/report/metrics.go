// Copyright (c) 2026, Sysnap Authors.  All rights reserved.
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

package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Report assembly metrics
	reportRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sysnap_report_run_duration_seconds",
			Help:    "Time taken to assemble a complete report",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	reportRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sysnap_report_runs_total",
			Help: "Total number of report assembly attempts",
		},
		[]string{"status"}, // success or error
	)

	reportCollectorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sysnap_report_collector_duration_seconds",
			Help:    "Time taken by individual collectors",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"kind"}, // command, file, dir, note, service, cluster
	)

	reportFailureCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sysnap_report_failures",
			Help: "Number of collector failures in the last assembled report",
		},
	)
)
