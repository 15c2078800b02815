package journal

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the journal routes. The paths mirror what the web
// client already calls: the POST singular, the GET/DELETE under /journals.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.POST("/journal", h.Create)
	e.GET("/journals/:id", h.List)
	e.DELETE("/journals/:id", h.Delete)
}
