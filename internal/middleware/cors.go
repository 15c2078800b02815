package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is the list of origins permitted to make cross-origin
	// requests. Use ["*"] to allow all (not recommended for production).
	// Example: ["https://app.luminary.example", "http://localhost:3000"]
	AllowedOrigins []string

	// AllowCredentials indicates whether the browser should include cookies
	// in cross-origin requests. Required for session-based auth because the
	// web client is served from a different origin than the API.
	AllowCredentials bool
}

// CORS returns middleware that handles Cross-Origin Resource Sharing headers.
//
// The entire surface here is a JSON API consumed by a separately hosted web
// client, so every state-changing request arrives cross-origin and needs
// both the origin allow-list and credentialed cookies.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	// Build a set for fast origin lookup.
	allowAll := false
	originSet := make(map[string]bool)
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
		originSet[o] = true
	}

	// SECURITY: Wildcard origin with credentials is a dangerous misconfiguration.
	// It allows any website to make authenticated requests to the API. Refuse to
	// send credentials when the origin is a wildcard.
	if allowAll && cfg.AllowCredentials {
		slog.Warn("CORS misconfiguration: AllowedOrigins=['*'] with AllowCredentials=true is insecure — credentials will NOT be sent for wildcard origins. Specify explicit origins instead.")
		cfg.AllowCredentials = false
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			origin := req.Header.Get("Origin")

			// No Origin header means same-origin request -- skip CORS.
			if origin == "" {
				return next(c)
			}

			allowed := allowAll || originSet[origin]
			if !allowed {
				// Origin not in the allow-list: proceed without CORS headers.
				// The browser will block the response on its side.
				return next(c)
			}

			if allowAll {
				res.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				res.Header().Set("Access-Control-Allow-Origin", origin)
				// Vary on Origin so caches don't serve one origin's headers
				// to another.
				res.Header().Add("Vary", "Origin")
			}

			if cfg.AllowCredentials {
				res.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			// Preflight request: answer it directly without hitting handlers.
			if req.Method == http.MethodOptions {
				res.Header().Set("Access-Control-Allow-Methods",
					strings.Join([]string{
						http.MethodGet, http.MethodPost, http.MethodPut,
						http.MethodDelete, http.MethodOptions,
					}, ", "))
				res.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				res.Header().Set("Access-Control-Max-Age", "86400")
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}
