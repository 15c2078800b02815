package journal

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Michal-Forman/Luminary-backend/internal/apperror"
)

// Handler handles HTTP requests for journal entries.
type Handler struct {
	service JournalService
}

// NewHandler creates a new journal handler with the given service.
func NewHandler(service JournalService) *Handler {
	return &Handler{service: service}
}

// Create adds a journal entry (POST /journal).
func (h *Handler) Create(c echo.Context) error {
	var req CreateJournalRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	entry, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, entry)
}

// List returns all entries owned by a user (GET /journals/:id, id = user id).
func (h *Handler) List(c echo.Context) error {
	entries, err := h.service.ListByOwner(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Delete removes an entry (DELETE /journals/:id, id = journal id).
// Deleting an already-deleted entry still responds 204.
func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if !apperror.IsNotFound(err) {
			return err
		}
	}
	return c.NoContent(http.StatusNoContent)
}
