package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryParams(t *testing.T) {
	config := DefaultConfig()

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantErr   bool
	}{
		{"defaults", "", 1, 20, false},
		{"explicit page and limit", "page=3&limit=50", 3, 50, false},
		{"page only", "page=2", 2, 20, false},
		{"limit only", "limit=5", 1, 5, false},
		{"max limit accepted", "limit=100", 1, 100, false},
		{"zero page rejected", "page=0", 0, 0, true},
		{"negative page rejected", "page=-1", 0, 0, true},
		{"non-numeric page rejected", "page=abc", 0, 0, true},
		{"limit over max rejected", "limit=101", 0, 0, true},
		{"zero limit rejected", "limit=0", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/subsidies?"+tt.query, nil)
			params, err := ParseQueryParams(r, config)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestParamsOffset(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{3, 10, 20},
		{5, 7, 28},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Params{Page: tt.page, Limit: tt.limit}.Offset())
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 20, 1},
		{10, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 20, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit))
	}
}

func TestValidate(t *testing.T) {
	config := DefaultConfig()

	assert.NoError(t, Params{Page: 1, Limit: 20}.Validate(config))
	assert.Error(t, Params{Page: 0, Limit: 20}.Validate(config))
	assert.Error(t, Params{Page: 1, Limit: 0}.Validate(config))
	assert.Error(t, Params{Page: 1, Limit: 101}.Validate(config))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PAGINATION_DEFAULT_LIMIT", "30")
	t.Setenv("PAGINATION_MAX_LIMIT", "not-a-number")

	config := LoadFromEnv()
	assert.Equal(t, 1, config.DefaultPage)
	assert.Equal(t, 30, config.DefaultLimit)
	assert.Equal(t, 100, config.MaxLimit) // 不正値はデフォルトに退避
}

func TestNewMetadata(t *testing.T) {
	meta := NewMetadata(Params{Page: 2, Limit: 20}, 45)
	assert.Equal(t, int64(45), meta.Total)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 3, meta.TotalPages)
}
