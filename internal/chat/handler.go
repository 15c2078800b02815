package chat

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Michal-Forman/Luminary-backend/internal/apperror"
	"github.com/Michal-Forman/Luminary-backend/internal/auth"
)

// maxPromptBytes bounds the raw prompt body. Far above any real prompt but
// low enough that nobody streams a file through the therapist.
const maxPromptBytes = 16 * 1024

// Handler handles HTTP requests for the therapist chat.
type Handler struct {
	service ChatService
}

// NewHandler creates a new chat handler with the given service.
func NewHandler(service ChatService) *Handler {
	return &Handler{service: service}
}

// Converse proxies a prompt to the therapist (POST /chat-therapist).
// The body is the raw prompt text and the response is the raw reply text,
// matching what the web client sends and renders.
func (h *Handler) Converse(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPromptBytes))
	if err != nil {
		return apperror.NewBadRequest("could not read prompt")
	}

	reply, err := h.service.Converse(c.Request().Context(), auth.GetUserID(c), string(body))
	if err != nil {
		return err
	}

	return c.String(http.StatusOK, reply)
}

// History returns a user's conversation (GET /messages/:id, id = user id).
func (h *Handler) History(c echo.Context) error {
	messages, err := h.service.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messages)
}

// Clear deletes a user's conversation (DELETE /messages/:id, id = user id).
// Only the caller's own history can be cleared.
func (h *Handler) Clear(c echo.Context) error {
	if c.Param("id") != auth.GetUserID(c) {
		return apperror.NewNotFound("owner not found")
	}
	if err := h.service.ClearHistory(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
