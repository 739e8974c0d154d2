// Package middleware provides cross-cutting HTTP middleware for the API
// server.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// CORSConfig holds the CORS policy.
type CORSConfig struct {
	// AllowedOrigins is the origin whitelist. A single "*" entry allows any
	// origin, which fits a public read-only API.
	AllowedOrigins []string

	// AllowedMethods lists the HTTP methods permitted in CORS requests.
	AllowedMethods []string

	// AllowedHeaders lists the request headers permitted in CORS requests.
	AllowedHeaders []string

	// MaxAge is how long browsers may cache preflight results, in seconds.
	MaxAge int
}

// DefaultCORSConfig returns the policy used when no environment overrides
// are present: any origin, read methods plus the ingest trigger, 24h
// preflight caching.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}
}

// LoadCORSConfig builds the CORS policy from environment variables, falling
// back to DefaultCORSConfig for anything unset.
//
// Environment variables:
//   - CORS_ALLOWED_ORIGINS: comma-separated origins, or "*"
//   - CORS_ALLOWED_METHODS: comma-separated HTTP methods
//   - CORS_ALLOWED_HEADERS: comma-separated request headers
//   - CORS_MAX_AGE: preflight cache seconds
func LoadCORSConfig() (CORSConfig, error) {
	config := DefaultCORSConfig()

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		origins, err := parseOrigins(raw)
		if err != nil {
			return config, err
		}
		config.AllowedOrigins = origins
	}
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_METHODS")); raw != "" {
		config.AllowedMethods = splitAndTrim(raw)
	}
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_HEADERS")); raw != "" {
		config.AllowedHeaders = splitAndTrim(raw)
	}
	if raw := strings.TrimSpace(os.Getenv("CORS_MAX_AGE")); raw != "" {
		maxAge, err := strconv.Atoi(raw)
		if err != nil || maxAge < 0 {
			return config, fmt.Errorf("invalid CORS_MAX_AGE: %q", raw)
		}
		config.MaxAge = maxAge
	}

	return config, nil
}

// CORS returns middleware applying the given policy. Same-origin requests
// (no Origin header) pass through untouched. Disallowed origins get no CORS
// headers, leaving the browser to block the response. Preflight OPTIONS
// requests are answered directly with 204.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	allowAny := len(config.AllowedOrigins) == 1 && config.AllowedOrigins[0] == "*"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed := allowAny
			if !allowed {
				for _, candidate := range config.AllowedOrigins {
					if candidate == origin {
						allowed = true
						break
					}
				}
			}
			if !allowed {
				slog.Warn("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
				next.ServeHTTP(w, r)
				return
			}

			if allowAny {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func parseOrigins(raw string) ([]string, error) {
	parts := splitAndTrim(raw)
	origins := make([]string, 0, len(parts))
	for _, origin := range parts {
		if origin == "*" {
			return []string{"*"}, nil
		}
		u, err := url.Parse(origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("invalid origin %q", origin)
		}
		// パス付きや末尾スラッシュのオリジンはブラウザと一致しない
		if u.Path != "" || strings.HasSuffix(origin, "/") {
			return nil, fmt.Errorf("origin %q must not include a path or trailing slash", origin)
		}
		origins = append(origins, origin)
	}
	if len(origins) == 0 {
		return nil, fmt.Errorf("no valid origins in %q", raw)
	}
	return origins, nil
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
