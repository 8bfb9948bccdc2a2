// Package publicurl converts stored attachment locators into externally
// dereferenceable URLs. Resolution is pure: the same locator and request
// context always produce the same URL.
package publicurl

import "strings"

// Request carries the transport context of the call currently being served:
// the effective scheme (after honoring X-Forwarded-Proto at the HTTP layer)
// and the Host header value.
type Request struct {
	Proto string
	Host  string
}

// Resolver builds absolute URLs for relative attachment locators.
//
// Precedence: a locator that already carries a scheme is returned unchanged
// (records created under a different resolution policy stay valid), then the
// configured deployment-wide base, then scheme://host derived from the
// request.
type Resolver struct {
	// Base is the deployment-wide public base URL without trailing slash;
	// empty means URLs are derived from the incoming request.
	Base string
}

// Resolve returns an absolute URL for locator, or "" for an empty locator.
func (r Resolver) Resolve(locator string, req Request) string {
	if locator == "" {
		return ""
	}
	if IsAbsolute(locator) {
		return locator
	}
	rel := strings.TrimPrefix(locator, "/")
	if r.Base != "" {
		return r.Base + "/" + rel
	}
	return req.Proto + "://" + req.Host + "/" + rel
}

// IsAbsolute reports whether s is already a fully qualified http(s) URL.
func IsAbsolute(s string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}
