package habit

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the habit routes.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.POST("/habit", h.Create)
	e.GET("/habit/:id", h.List)
}
