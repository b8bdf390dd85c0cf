package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Common proxy headers, in the order they are usually trusted.
const (
	HeaderCFConnectingIP = "CF-Connecting-IP"
	HeaderDOConnectingIP = "DO-Connecting-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderXRealIP        = "X-Real-IP"
)

// Resolver extracts the client address from a request.
//
// Forwarded headers are client controlled unless a proxy overwrites them, so
// a Resolver only reads the headers it was told to trust and otherwise uses
// the connection's remote address.
type Resolver struct {
	headers []string
}

// NewResolver returns a Resolver that consults headers in order before
// falling back to RemoteAddr. Empty names are dropped.
func NewResolver(headers ...string) *Resolver {
	r := &Resolver{headers: make([]string, 0, len(headers))}
	for _, h := range headers {
		if h = strings.TrimSpace(h); h != "" {
			r.headers = append(r.headers, http.CanonicalHeaderKey(h))
		}
	}
	return r
}

// Headers returns the trusted header names in lookup order.
func (r *Resolver) Headers() []string {
	out := make([]string, len(r.headers))
	copy(out, r.headers)
	return out
}

// IP returns the normalized client address, or "" when none is valid.
// X-Forwarded-For yields its first valid entry.
func (r *Resolver) IP(req *http.Request) string {
	for _, h := range r.headers {
		raw := req.Header.Get(h)
		if raw == "" {
			continue
		}
		if h == HeaderXForwardedFor {
			for part := range strings.SplitSeq(raw, ",") {
				if ip := parseIP(part); ip != "" {
					return ip
				}
			}
			continue
		}
		if ip := parseIP(raw); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return parseIP(req.RemoteAddr)
	}
	return parseIP(host)
}

// GetIP resolves the client address from RemoteAddr only.
func GetIP(req *http.Request) string {
	return NewResolver().IP(req)
}

// parseIP validates and normalizes an address. IPv4-mapped IPv6 addresses are
// unmapped and zones are dropped.
func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
