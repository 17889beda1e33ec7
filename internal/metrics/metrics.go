// Package metrics exposes Prometheus counters for the harvest pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchAttempts tracks the number of HTTP requests dispatched, including
	// backed-off retries of the same URL.
	FetchAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvest_fetch_attempts_total",
		Help: "The total number of HTTP requests sent.",
	})
	// FetchErrors tracks requests that resulted in a non-retryable error.
	FetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvest_fetch_errors_total",
		Help: "The total number of failed HTTP requests.",
	})
	// RateLimitHits tracks the number of times the harvester was rate
	// limited (HTTP 429) and backed off.
	RateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvest_rate_limit_hits_total",
		Help: "The total number of times the harvester was rate limited.",
	})
	// RowsWritten tracks data rows appended per dataset.
	RowsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "harvest_rows_written_total",
		Help: "The total number of rows appended, partitioned by dataset.",
	}, []string{"dataset"})
	// RowsSkipped tracks records filtered out because their id was already
	// persisted by a prior run.
	RowsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "harvest_rows_skipped_total",
		Help: "The total number of already-present rows skipped, partitioned by dataset.",
	}, []string{"dataset"})
)
