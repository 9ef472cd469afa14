package utils

import (
	"net"
	"net/http"
	"strings"
)

// DeviceId derives the pseudonymous voter key from the request's apparent
// network origin: the first entry of X-Forwarded-For when present, otherwise
// the direct peer address. Weak and spoofable, but good enough to keep a
// casual audience at one vote per device.
func DeviceId(request *http.Request) string {
	forwarded := request.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
