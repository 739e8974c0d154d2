// Package ingest provides use cases for pulling subsidy records from the
// external sources and reconciling them into the store. It implements the
// per-source fetch orchestration, the natural-key upsert, and the demo
// dataset seeding used when every source comes back empty.
package ingest

import "errors"

// Sentinel errors for ingest use case operations.
var (
	// ErrIngestInProgress indicates that an ingestion run is already
	// executing. Runs are serialized; callers should retry later.
	ErrIngestInProgress = errors.New("ingestion run already in progress")
)
