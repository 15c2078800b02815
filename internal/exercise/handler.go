package exercise

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Michal-Forman/Luminary-backend/internal/apperror"
)

// Handler handles HTTP requests for exercises and progressions.
type Handler struct {
	service ExerciseService
}

// NewHandler creates a new exercise handler with the given service.
func NewHandler(service ExerciseService) *Handler {
	return &Handler{service: service}
}

// Create adds an exercise and seeds its progression (POST /exercise).
func (h *Handler) Create(c echo.Context) error {
	var req CreateExerciseRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	created, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// List returns all exercises owned by a user (GET /exercise/:id, id = user id).
func (h *Handler) List(c echo.Context) error {
	exercises, err := h.service.ListByOwner(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, exercises)
}

// Update replaces an exercise's fields (PUT /exercise) and records the
// weight change in its progression when the weight differs.
func (h *Handler) Update(c echo.Context) error {
	var req UpdateExerciseRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}
	if req.ExerciseID == "" {
		return apperror.NewValidation("exerciseId is required")
	}

	if err := h.service.Update(c.Request().Context(), req); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes an exercise (DELETE /exercise/:id, id = exercise id).
// Deleting an already-deleted exercise still responds 204.
func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if !apperror.IsNotFound(err) {
			return err
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// Progression returns the sample sequence for an exercise
// (GET /exercise_progression/:id, id = exercise id).
func (h *Handler) Progression(c echo.Context) error {
	samples, err := h.service.GetProgression(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, samples)
}
