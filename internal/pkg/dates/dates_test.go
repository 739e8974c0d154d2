package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoose(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			name: "ISO date",
			in:   "2025-04-01",
			want: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "ISO timestamp keeps only the date",
			in:   "2025-04-01T09:30:00Z",
			want: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "slash separated",
			in:   "2025/4/1",
			want: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "US style",
			in:   "April 1, 2025",
			want: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "japanese calendar notation",
			in:   "2025年4月1日",
			want: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "surrounding whitespace",
			in:   "  2025-04-01  ",
			want: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLoose(tt.in)
			require.NotNil(t, got)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseLoose_NoDate(t *testing.T) {
	for _, in := range []string{"", "   ", "随時", "未定", "not a date at all!!"} {
		assert.Nil(t, ParseLoose(in), "input %q", in)
	}
}
