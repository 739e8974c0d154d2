// Package subsidy provides the read-side use cases over the subsidy store:
// listing, point lookup, filtered search, profile matching, and aggregate
// statistics. All operations here are read-only and safe to run concurrently
// with ingestion.
package subsidy

import "errors"

// Sentinel errors for subsidy use case operations.
var (
	// ErrSubsidyNotFound indicates that no subsidy exists with the given ID.
	ErrSubsidyNotFound = errors.New("subsidy not found")

	// ErrInvalidSubsidyID indicates that the provided ID is not a positive integer.
	ErrInvalidSubsidyID = errors.New("invalid subsidy ID")
)
