package common

import (
	"net"
	"net/http"
	"strings"
)

// RemoteHost returns the host part of r.RemoteAddr. The API router runs
// chi's RealIP ahead of everything else, so forwarding headers are already
// folded into RemoteAddr and are not read again here.
func RemoteHost(r *http.Request) string {
	if r == nil {
		return ""
	}
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
