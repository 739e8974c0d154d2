// Package dates normalizes the free-form date strings published by subsidy
// sources into calendar dates. Upstream data is uncurated, so parsing is
// tolerant by contract: a malformed value yields "no date" rather than an
// error, and never aborts ingestion of an otherwise valid record.
package dates

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// fallbackLayouts are tried when dateparse gives up. Covers the Japanese
// calendar notation the Tokyo pages use, which dateparse does not know.
var fallbackLayouts = []string{
	"2006年1月2日",
	"2006年01月02日",
	"2006.01.02",
	"2006/1/2",
}

// ParseLoose parses an arbitrary human-entered date string.
// It returns a pointer to the parsed date truncated to midnight UTC, or nil
// when the input is empty, blank, or unparseable. It never returns an error.
func ParseLoose(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if t, err := dateparse.ParseAny(s); err == nil {
		return dateOf(t)
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOf(t)
		}
	}

	return nil
}

func dateOf(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
