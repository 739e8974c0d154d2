// Package pathutil provides helpers for working with URL paths: extracting
// numeric IDs and normalizing dynamic paths for metric labels.
package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractID parses an integer ID out of a URL path after stripping prefix.
// IDs must be positive.
//
// Example:
//
//	id, err := ExtractID("/subsidies/123", "/subsidies/")
//	// Returns: 123, nil
func ExtractID(path, prefix string) (int64, error) {
	idStr := strings.TrimPrefix(path, prefix)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
