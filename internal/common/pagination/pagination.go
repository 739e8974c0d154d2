// Package pagination provides offset-based pagination helpers shared by the
// subsidy list endpoints.
package pagination

import (
	"os"
	"strconv"
)

// Config holds pagination limits and defaults.
type Config struct {
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns the standard configuration: page 1, 20 per page,
// capped at 100.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// LoadFromEnv loads pagination config from environment variables, falling
// back to the defaults for anything unset or unparseable.
//
// Supported variables:
//   - PAGINATION_DEFAULT_PAGE
//   - PAGINATION_DEFAULT_LIMIT
//   - PAGINATION_MAX_LIMIT
func LoadFromEnv() Config {
	return Config{
		DefaultPage:  envInt("PAGINATION_DEFAULT_PAGE", 1),
		DefaultLimit: envInt("PAGINATION_DEFAULT_LIMIT", 20),
		MaxLimit:     envInt("PAGINATION_MAX_LIMIT", 100),
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}
