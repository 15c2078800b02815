package chat

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Michal-Forman/Luminary-backend/internal/auth"
	"github.com/Michal-Forman/Luminary-backend/internal/middleware"
)

// RegisterRoutes sets up the chat routes. All of them need a session: the
// conversation is attributed to the caller, and the upstream API costs
// money per request, hence the tighter rate limit on the proxy itself.
func RegisterRoutes(e *echo.Echo, h *Handler, authSvc auth.AuthService) {
	authed := e.Group("", auth.RequireAuth(authSvc))

	authed.POST("/chat-therapist", h.Converse, middleware.RateLimit(10, time.Minute))
	authed.GET("/messages/:id", h.History)
	authed.DELETE("/messages/:id", h.Clear)
}
