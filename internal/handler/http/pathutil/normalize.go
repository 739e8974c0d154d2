package pathutil

import (
	"regexp"
	"strings"
)

// pathPatterns maps dynamic routes to templates, evaluated in order.
// Pre-compiled at initialization.
var pathPatterns = []struct {
	pattern  *regexp.Regexp
	template string
}{
	{regexp.MustCompile(`^/subsidies/\d+$`), "/subsidies/:id"},
}

// NormalizePath collapses ID-carrying paths into a template form so metric
// labels stay bounded: /subsidies/123 becomes /subsidies/:id while static
// paths like /health or /subsidies/search pass through unchanged. Query
// strings and trailing slashes are stripped first.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}
	return path
}
