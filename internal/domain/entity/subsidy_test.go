package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestSubsidy_IsActive(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  *time.Time
		want bool
	}{
		{
			name: "nil end date means open-ended",
			end:  nil,
			want: true,
		},
		{
			name: "end date in the past",
			end:  datePtr(2025, 6, 14),
			want: false,
		},
		{
			name: "end date today",
			end:  datePtr(2025, 6, 15),
			want: true,
		},
		{
			name: "end date in the future",
			end:  datePtr(2099, 1, 1),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Subsidy{
				Title:          "テスト補助金",
				URL:            "https://example.com/subsidy/1",
				Source:         SourceAPI,
				ApplicationEnd: tt.end,
			}
			assert.Equal(t, tt.want, s.IsActive(now))
		})
	}
}

func TestSubsidy_IsActive_IgnoresTimeOfDay(t *testing.T) {
	// 23:59 on the closing day is still active; the window closes by date.
	now := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)
	s := Subsidy{ApplicationEnd: datePtr(2025, 6, 15)}
	assert.True(t, s.IsActive(now))
}

func TestDateOf(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	got := DateOf(time.Date(2025, 6, 15, 23, 59, 59, 123, jst))

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, jst), got)
}

func TestSubsidy_Validate(t *testing.T) {
	valid := Subsidy{
		Title:  "小規模事業者持続化補助金",
		URL:    "https://example.go.jp/hojo/1",
		Source: SourceScraped,
	}

	t.Run("valid record", func(t *testing.T) {
		s := valid
		assert.NoError(t, s.Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		s := valid
		s.Title = ""
		err := s.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "title")
	})

	t.Run("missing url", func(t *testing.T) {
		s := valid
		s.URL = ""
		err := s.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "url")
	})

	t.Run("unknown source tag", func(t *testing.T) {
		s := valid
		s.Source = "jgrants" // raw upstream tag, must be normalized first
		err := s.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid source")
	})
}

func TestSubsidy_ZeroValue(t *testing.T) {
	var s Subsidy

	assert.Nil(t, s.ApplicationStart)
	assert.Nil(t, s.ApplicationEnd)
	assert.True(t, s.IsActive(time.Now())) // no end date, active by definition
	assert.Error(t, s.Validate())
}
