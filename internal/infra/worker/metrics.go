package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"subsidy-finder/internal/pkg/config"
)

// WorkerMetrics tracks the scheduled ingestion job.
type WorkerMetrics struct {
	*config.ConfigMetrics

	// IngestJobRunsTotal counts runs by outcome (success, partial, failure).
	IngestJobRunsTotal *prometheus.CounterVec

	// IngestJobDurationSeconds measures run duration. Buckets cover quick
	// API-only runs up to slow scrapes with retries.
	IngestJobDurationSeconds prometheus.Histogram

	// IngestJobRecordsTotal counts subsidy records reconciled across runs.
	IngestJobRecordsTotal prometheus.Counter

	// IngestJobLastSuccessTimestamp records the last successful run, the
	// primary staleness alerting signal.
	IngestJobLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates and registers the worker collectors.
// Call once per process.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		IngestJobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_ingest_job_runs_total",
			Help: "Total number of scheduled ingestion runs by result",
		}, []string{"result"}),

		IngestJobDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_ingest_job_duration_seconds",
			Help:    "Duration of scheduled ingestion runs in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 180, 600},
		}),

		IngestJobRecordsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_ingest_job_records_total",
			Help: "Total number of subsidy records reconciled by scheduled runs",
		}),

		IngestJobLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_ingest_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful scheduled ingestion run",
		}),
	}
}

// RecordJobRun counts one run with the given result.
func (m *WorkerMetrics) RecordJobRun(result string) {
	m.IngestJobRunsTotal.WithLabelValues(result).Inc()
}

// RecordJobDuration observes the duration of one run.
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.IngestJobDurationSeconds.Observe(seconds)
}

// RecordRecordsProcessed adds the number of records one run reconciled.
func (m *WorkerMetrics) RecordRecordsProcessed(count int) {
	m.IngestJobRecordsTotal.Add(float64(count))
}

// RecordLastSuccess marks now as the latest successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.IngestJobLastSuccessTimestamp.SetToCurrentTime()
}
