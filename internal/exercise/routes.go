package exercise

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the exercise and progression routes.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.POST("/exercise", h.Create)
	e.GET("/exercise/:id", h.List)
	e.PUT("/exercise", h.Update)
	e.DELETE("/exercise/:id", h.Delete)

	e.GET("/exercise_progression/:id", h.Progression)
}
