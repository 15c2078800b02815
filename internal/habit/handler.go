package habit

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Michal-Forman/Luminary-backend/internal/apperror"
)

// Handler handles HTTP requests for habits.
type Handler struct {
	service HabitService
}

// NewHandler creates a new habit handler with the given service.
func NewHandler(service HabitService) *Handler {
	return &Handler{service: service}
}

// Create adds a habit (POST /habit).
func (h *Handler) Create(c echo.Context) error {
	var req CreateHabitRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	created, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// List returns all habits owned by a user (GET /habit/:id, id = user id).
func (h *Handler) List(c echo.Context) error {
	habits, err := h.service.ListByOwner(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, habits)
}
