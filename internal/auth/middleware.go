package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Context keys for storing the resolved identity in Echo context. Other
// packages use these keys (via the exported getter functions below) to
// access the authenticated user's information.
const (
	contextKeyPrincipal = "auth_principal"
	contextKeyUserID    = "auth_user_id"
)

// RequireAuth returns middleware that validates the session cookie and
// injects the resolved Principal into the request context. Missing,
// expired, or orphaned sessions (user record deleted) all yield 401.
func RequireAuth(service AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := getSessionToken(c)
			if token == "" {
				return unauthenticated(c)
			}

			principal, err := service.ValidateSession(c.Request().Context(), token)
			if err != nil {
				// Invalid or expired session -- clear the stale cookie.
				clearSessionCookie(c)
				return unauthenticated(c)
			}

			// Store identity in context for downstream handlers.
			c.Set(contextKeyPrincipal, principal)
			c.Set(contextKeyUserID, principal.UserID)

			return next(c)
		}
	}
}

// unauthenticated writes the JSON 401 every protected route shares.
func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error":   "unauthorized",
		"message": "authentication required",
	})
}

// --- Exported getters for other packages ---

// GetPrincipal retrieves the authenticated Principal from the Echo context.
// Returns nil if the request is not authenticated (middleware not applied).
func GetPrincipal(c echo.Context) *Principal {
	principal, ok := c.Get(contextKeyPrincipal).(*Principal)
	if !ok {
		return nil
	}
	return principal
}

// GetUserID retrieves the authenticated user's ID from the Echo context.
// Returns empty string if the request is not authenticated.
func GetUserID(c echo.Context) string {
	id, ok := c.Get(contextKeyUserID).(string)
	if !ok {
		return ""
	}
	return id
}
