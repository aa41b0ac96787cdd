package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ErrInvalidDomain is returned when an input cannot be reduced to a host
// with a registrable domain.
var ErrInvalidDomain = errors.New("domain: input cannot be parsed as a host")

// Registrable canonicalizes a URL or bare domain string to its registrable
// domain (eTLD+1), lowercased. Scheme, subdomains, port, path, and trailing
// slashes are ignored.
//
//	Registrable("http://blog.sub.example.co.uk/x") == "example.co.uk"
//	Registrable("Example.COM")                     == "example.com"
func Registrable(input string) (string, error) {
	host := hostOf(input)
	if host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidDomain, input)
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidDomain, input, err)
	}
	return etld1, nil
}

// SameSite reports whether two URL or domain strings resolve to the same
// registrable domain. It returns false when either side is invalid.
func SameSite(a, b string) bool {
	ra, err := Registrable(a)
	if err != nil {
		return false
	}
	rb, err := Registrable(b)
	if err != nil {
		return false
	}
	return ra == rb
}

// hostOf extracts the bare lowercased hostname from a URL or domain string.
// Returns "" when no host can be recovered.
func hostOf(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	// Bare domains ("example.com", "example.com/path") parse with an empty
	// Host, so force a scheme before parsing.
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimSuffix(host, ".")

	// A host without any dot (e.g. "localhost") has no registrable domain
	// and would be rejected by the public suffix lookup anyway, but catch
	// plainly malformed values here for a clearer error path.
	if host == "" || strings.ContainsAny(host, " \t") {
		return ""
	}
	return host
}
