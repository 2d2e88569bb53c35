package middleware

import (
	"log/slog"
	"net/http"
	"net/netip"

	"github.com/mcoot/badancup/internal/middleware"
)

// Logging creates logging middleware for the web interface
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("surface", "web")))
}

// SecureHeaders sets browser security headers on every page
func SecureHeaders(next http.Handler) http.Handler {
	return middleware.SecureHeaders(next)
}

// RealIP resolves the client address, believing forwarding headers only
// from trusted proxies
func RealIP(trusted []netip.Prefix) func(http.Handler) http.Handler {
	return middleware.RealIP(trusted)
}
