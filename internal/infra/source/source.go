// Package source provides the data source adapters that fetch raw subsidy
// listings and normalize them into canonical entity.Subsidy records.
//
// Two adapters exist: JGrantsAdapter for the jGrants JSON API and
// TokyoAdapter for the Tokyo metropolitan HTML page. Both the API and the
// page are uncontrolled upstreams, so parsing is best-effort by design: a
// malformed field gets a default, a block missing its essentials is skipped,
// and a dead upstream yields an error that the ingest orchestrator logs and
// moves past.
package source

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"subsidy-finder/internal/domain/entity"
)

const (
	userAgent   = "SubsidyFinderBot/1.0"
	maxBodySize = 10 * 1024 * 1024 // 10MB
)

// Adapter fetches one external source and maps it into canonical records.
type Adapter interface {
	// Name identifies the adapter in logs, metrics, and ingest summaries.
	Name() string
	// Fetch retrieves and normalizes the source. Returned records already
	// carry their Source tag; reconciliation and persistence are the
	// caller's concern.
	Fetch(ctx context.Context) ([]*entity.Subsidy, error)
}

// validateFetchURL checks if a URL is safe to fetch (SSRF prevention).
// URLs on 127.0.0.1 with ephemeral ports are allowed so httptest servers
// work in tests while common local service ports stay blocked.
func validateFetchURL(urlStr string) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %s (only http/https allowed)", u.Scheme)
	}

	if u.Hostname() == "127.0.0.1" && u.Port() != "" {
		portNum := 0
		if _, err := fmt.Sscanf(u.Port(), "%d", &portNum); err == nil {
			if portNum >= 32768 && portNum <= 65535 {
				return nil
			}
		}
	}

	ips, err := net.LookupIP(u.Hostname())
	if err != nil {
		return fmt.Errorf("DNS lookup failed: %w", err)
	}
	for _, ip := range ips {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() {
			return fmt.Errorf("private IP address detected: %s (SSRF prevention)", ip)
		}
	}

	return nil
}

// resolveURL resolves a possibly-relative link against the page it was found
// on. Unparseable links are returned as-is; the record validation step will
// reject them if they are unusable.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
