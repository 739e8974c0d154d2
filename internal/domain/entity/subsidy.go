// Package entity defines the core domain entities and validation logic for the application.
// It contains the Subsidy record produced by every data source adapter, along with
// its validation rules and domain-specific errors.
package entity

import (
	"fmt"
	"time"
)

// Source tags identify which adapter produced a record. Together with the
// listing URL they form the natural key used for reconciliation: at most one
// stored record may exist per (source, url) pair.
const (
	// SourceAPI marks records ingested from the jGrants JSON API.
	SourceAPI = "api-sourced"

	// SourceScraped marks records ingested from scraped HTML pages.
	SourceScraped = "scraped"
)

// Subsidy represents a single government subsidy listing in its canonical
// shape. All adapters normalize their raw output into this struct before
// reconciliation.
//
// Amount is deliberately kept as free text ("上限500万円、補助率2/3" and the
// like); upstream sources do not publish it in a parseable form.
type Subsidy struct {
	ID               int64
	Title            string
	Description      string
	Organization     string
	Target           string
	Amount           string
	ApplicationStart *time.Time // nil when the source did not publish a date
	ApplicationEnd   *time.Time // nil means open-ended (always active)
	URL              string
	Keywords         string // comma-joined free-text tags
	Source           string // SourceAPI or SourceScraped
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsActive reports whether the application window is still open as of the
// given day. A nil ApplicationEnd means the listing never closes. Only the
// calendar date matters; the time-of-day portion of both sides is ignored.
//
// This is a derived property: it is computed on every read and never stored,
// so search filters, match results, and serialization all agree.
func (s *Subsidy) IsActive(now time.Time) bool {
	if s.ApplicationEnd == nil {
		return true
	}
	today := DateOf(now)
	return !s.ApplicationEnd.Before(today)
}

// Validate checks the fields an adapter must always supply.
// Records failing validation are skipped during ingestion, never stored.
func (s *Subsidy) Validate() error {
	if s.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if s.URL == "" {
		return &ValidationError{Field: "url", Message: "is required"}
	}
	if s.Source != SourceAPI && s.Source != SourceScraped {
		return fmt.Errorf("invalid source: %q (must be %s or %s)", s.Source, SourceAPI, SourceScraped)
	}
	return nil
}

// DateOf drops the time-of-day portion of t, keeping the location. Anything
// that compares against application_end must anchor on this value, not on a
// raw clock reading, so store queries and IsActive agree on the cutoff day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
