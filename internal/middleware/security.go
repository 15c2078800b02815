package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders returns middleware that sets security-related HTTP headers
// on every response. The API serves no HTML, so the headers focus on keeping
// responses out of frames and stopping MIME sniffing; TLS is terminated by
// the reverse proxy in front of the service.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			// Strict-Transport-Security: tell browsers to always use HTTPS
			// for subsequent requests (proxy terminates TLS).
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

			// X-Content-Type-Options: prevent MIME type sniffing of JSON
			// responses into something executable.
			h.Set("X-Content-Type-Options", "nosniff")

			// X-Frame-Options: API responses never belong in a frame.
			h.Set("X-Frame-Options", "DENY")

			// Referrer-Policy: limit referrer information leaked to external sites.
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// Content-Security-Policy: belt-and-braces for any response a
			// browser renders directly (e.g. the plain-text chat reply).
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

			return next(c)
		}
	}
}
