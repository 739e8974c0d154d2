// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Business metrics track subsidy aggregation operations
var (
	// SubsidiesTotal tracks total number of subsidies in the database
	SubsidiesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "subsidies_total",
			Help: "Total number of subsidies in the database",
		},
	)

	// SubsidiesActive tracks the number of subsidies still accepting applications
	SubsidiesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "subsidies_active",
			Help: "Number of subsidies whose application window is open",
		},
	)

	// SubsidiesFetchedTotal counts records fetched from each source adapter
	SubsidiesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subsidies_fetched_total",
			Help: "Total number of subsidy records fetched from sources",
		},
		[]string{"source"},
	)

	// IngestRunsTotal counts ingestion runs by result
	IngestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_runs_total",
			Help: "Total number of ingestion runs",
		},
		[]string{"result"}, // result: success, partial, failure
	)

	// IngestDuration measures time for one full ingestion run
	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_duration_seconds",
			Help:    "Time taken for a full ingestion run",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	// SourceFetchDuration measures time to fetch one source
	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "source_fetch_duration_seconds",
			Help:    "Time taken to fetch and normalize one source",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"source"},
	)

	// SourceFetchErrors counts errors during source fetching
	SourceFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_fetch_errors_total",
			Help: "Total number of source fetch errors",
		},
		[]string{"source", "error_type"},
	)

	// SubsidiesReconciledTotal counts reconciliation outcomes per source
	SubsidiesReconciledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subsidies_reconciled_total",
			Help: "Total number of subsidy records reconciled into the store",
		},
		[]string{"source", "outcome"}, // outcome: inserted, updated
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
