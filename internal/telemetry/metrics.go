package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RowsGenerated counts telemetry rows emitted by the generator
	RowsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "aptel",
			Name:      "rows_generated_total",
			Help:      "Total number of telemetry rows generated",
		},
	)

	// BatchesEmitted counts generation batches flushed downstream
	BatchesEmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "aptel",
			Name:      "batches_emitted_total",
			Help:      "Total number of generation batches flushed",
		},
	)

	// RowsIngested counts aggregate rows appended to the time-series store
	RowsIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "aptel",
			Name:      "rows_ingested_total",
			Help:      "Total number of aggregate rows ingested",
		},
	)

	// RunsTotal counts pipeline runs by outcome
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aptel",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs",
		},
		[]string{"status"},
	)

	// StageDuration tracks per-stage runtime of the pipeline
	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aptel",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		},
		[]string{"stage"},
	)

	// SearchRequests counts search API requests by outcome
	SearchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aptel",
			Name:      "search_requests_total",
			Help:      "Total number of search API requests",
		},
		[]string{"status"},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// This function is idempotent and can be called multiple times safely.
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(RowsGenerated)
		prometheus.DefaultRegisterer.Register(BatchesEmitted)
		prometheus.DefaultRegisterer.Register(RowsIngested)
		prometheus.DefaultRegisterer.Register(RunsTotal)
		prometheus.DefaultRegisterer.Register(StageDuration)
		prometheus.DefaultRegisterer.Register(SearchRequests)
	})
}
