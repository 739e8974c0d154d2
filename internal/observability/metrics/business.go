package metrics

import (
	"time"
)

// RecordSubsidiesFetched records the number of records fetched from a source.
// This metric helps track source availability and volume over time.
func RecordSubsidiesFetched(source string, count int) {
	SubsidiesFetchedTotal.WithLabelValues(source).Add(float64(count))
}

// RecordSourceFetch records the duration of one source fetch.
func RecordSourceFetch(source string, duration time.Duration) {
	SourceFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordSourceFetchError records an error during source fetching.
// ErrorType should be a coarse category such as "fetch_failed" or
// "reconcile_failed" so the cardinality stays bounded.
func RecordSourceFetchError(source string, errorType string) {
	SourceFetchErrors.WithLabelValues(source, errorType).Inc()
}

// RecordReconciled records reconciliation outcomes for one source.
func RecordReconciled(source string, inserted, updated int) {
	if inserted > 0 {
		SubsidiesReconciledTotal.WithLabelValues(source, "inserted").Add(float64(inserted))
	}
	if updated > 0 {
		SubsidiesReconciledTotal.WithLabelValues(source, "updated").Add(float64(updated))
	}
}

// RecordIngestRun records a completed ingestion run.
// Result should be "success", "partial" (some sources failed), or "failure".
func RecordIngestRun(result string, duration time.Duration) {
	IngestRunsTotal.WithLabelValues(result).Inc()
	IngestDuration.Observe(duration.Seconds())
}

// UpdateSubsidiesTotal updates the total count of subsidies in the database.
// This gauge should be updated after each ingestion run.
func UpdateSubsidiesTotal(count int64) {
	SubsidiesTotal.Set(float64(count))
}

// UpdateSubsidiesActive updates the count of subsidies still open for
// applications. Computed against today's date, so it drifts between runs.
func UpdateSubsidiesActive(count int64) {
	SubsidiesActive.Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "search_subsidies", "upsert_subsidy").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
