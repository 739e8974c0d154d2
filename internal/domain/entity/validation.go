package entity

import (
	"fmt"
	"net"
	"net/url"
)

// maxURLLength caps listing URLs; anything longer is upstream garbage.
const maxURLLength = 2048

// ValidateURL validates the format and safety of a listing URL.
// It checks that the URL is well-formed, uses an HTTP/HTTPS scheme, and has a
// valid host. Hosts resolving to private addresses are rejected so that a
// malicious listing cannot point consumers at internal services.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}
	if parsed.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	// SSRF対策: プライベートIPに解決されるホストを拒否
	if ips, err := net.LookupIP(parsed.Hostname()); err == nil {
		for _, ip := range ips {
			if isPrivateIP(ip) {
				return &ValidationError{
					Field:   "url",
					Message: "url cannot point to private network",
				}
			}
		}
	}

	return nil
}

// isPrivateIP reports whether an IP belongs to a loopback, link-local, or
// RFC 1918 range. Link-local covers the 169.254.169.254 cloud metadata
// endpoint as well.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}
