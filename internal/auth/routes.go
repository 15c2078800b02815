package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Michal-Forman/Luminary-backend/internal/middleware"
)

// RegisterRoutes sets up all auth-related routes on the given Echo instance.
// Register and login are public -- the RequireAuth middleware is exported
// separately for other packages to use on their route groups.
//
// POST endpoints are rate-limited to slow brute-force and credential
// stuffing attacks: 10 attempts per IP per minute for login, 5 for register.
func RegisterRoutes(e *echo.Echo, h *Handler, svc AuthService) {
	e.POST("/register", h.Register, middleware.RateLimit(5, time.Minute))
	e.POST("/login", h.Login, middleware.RateLimit(10, time.Minute))

	// Session-holders only.
	authed := e.Group("", RequireAuth(svc))
	authed.POST("/logout", h.Logout)
	authed.GET("/me", h.Me)
}
