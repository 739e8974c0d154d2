package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordSubsidiesFetched(t *testing.T) {
	tests := []struct {
		name   string
		source string
		count  int
	}{
		{
			name:   "single record",
			source: "jgrants",
			count:  1,
		},
		{
			name:   "multiple records",
			source: "tokyo",
			count:  10,
		},
		{
			name:   "zero records",
			source: "jgrants",
			count:  0,
		},
		{
			name:   "empty source name",
			source: "",
			count:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordSubsidiesFetched(tt.source, tt.count)
			})
		})
	}
}

func TestRecordReconciled(t *testing.T) {
	tests := []struct {
		name     string
		inserted int
		updated  int
	}{
		{"inserts only", 3, 0},
		{"updates only", 0, 4},
		{"both", 2, 5},
		{"neither", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordReconciled("jgrants", tt.inserted, tt.updated)
			})
		})
	}
}

func TestRecordIngestRun(t *testing.T) {
	for _, result := range []string{"success", "partial", "failure"} {
		t.Run(result, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordIngestRun(result, 2*time.Second)
			})
		})
	}
}

func TestRecordSourceFetchError(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordSourceFetchError("tokyo", "fetch_failed")
	})
}

func TestGauges(t *testing.T) {
	assert.NotPanics(t, func() {
		UpdateSubsidiesTotal(42)
		UpdateSubsidiesActive(17)
	})
}

func TestRecordDBQuery(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordDBQuery("search_subsidies", 5*time.Millisecond)
	})
}

func TestRecordHTTPRequest(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordHTTPRequest("GET", "/subsidies", "200", 12*time.Millisecond)
	})
}
