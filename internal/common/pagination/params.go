package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params carries the page and limit requested by a client. Page numbers are
// 1-based.
type Params struct {
	Page  int
	Limit int
}

// ParseQueryParams reads page and limit from the request query string.
// Missing parameters take the configured defaults; malformed or out-of-range
// values are an error so clients notice typos instead of silently getting
// page 1.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Page:  config.DefaultPage,
		Limit: config.DefaultLimit,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}

// Validate checks params against the configured bounds.
func (p Params) Validate(config Config) error {
	if p.Page < 1 {
		return fmt.Errorf("page must be a positive integer")
	}
	if p.Limit < 1 || p.Limit > config.MaxLimit {
		return fmt.Errorf("limit must be between 1 and %d", config.MaxLimit)
	}
	return nil
}

// Offset converts the 1-based page number into a database OFFSET.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}
