// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count)
//   - Business metrics (subsidies, sources, ingestion runs)
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "subsidy-finder/internal/observability/metrics"
//
//	func ingestSource(source string) {
//	    start := time.Now()
//	    // ... fetch and reconcile records ...
//	    count := 10
//
//	    metrics.RecordSubsidiesFetched(source, count)
//	    metrics.RecordSourceFetch(source, time.Since(start))
//	}
package metrics
