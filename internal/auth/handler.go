package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Michal-Forman/Luminary-backend/internal/apperror"
)

// sessionCookieName is the HTTP cookie used to store the session token.
const sessionCookieName = "luminary_session"

// Handler handles HTTP requests for authentication (register, login, logout).
// Handlers are thin: they bind the request, call the service, and write the
// response. No business logic lives here.
type Handler struct {
	service AuthService
}

// NewHandler creates a new auth handler with the given service.
func NewHandler(service AuthService) *Handler {
	return &Handler{service: service}
}

// Register creates a new account (POST /register). Responds 201 with the
// public profile; the password hash never appears in the payload.
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	if msg := validateRegisterRequest(&req); msg != "" {
		return apperror.NewValidation(msg)
	}

	principal, err := h.service.Register(c.Request().Context(), RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, principal)
}

// Login authenticates and opens a session (POST /login). On success the
// session token goes into an HttpOnly cookie and the profile is returned
// under "message", which is the shape the web client expects.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}
	if req.Email == "" || req.Password == "" {
		return apperror.NewValidation("email and password are required")
	}

	token, principal, err := h.service.Login(c.Request().Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	setSessionCookie(c, token)

	return c.JSON(http.StatusOK, map[string]any{
		"message": principal,
	})
}

// Logout destroys the session and clears the cookie (POST /logout).
func (h *Handler) Logout(c echo.Context) error {
	token := getSessionToken(c)
	if token != "" {
		// Destroy the session in Redis. Ignore errors -- the cookie
		// will be cleared regardless.
		_ = h.service.DestroySession(c.Request().Context(), token)
	}

	clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the current caller's Principal (GET /me). Requires auth.
func (h *Handler) Me(c echo.Context) error {
	principal := GetPrincipal(c)
	if principal == nil {
		return apperror.NewUnauthorized("authentication required")
	}
	return c.JSON(http.StatusOK, principal)
}

// --- Cookie helpers ---

// getSessionToken reads the session token from the cookie.
func getSessionToken(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// setSessionCookie sets the session cookie on the response. The cookie is
// HttpOnly (JS can't read it), Secure if behind TLS, and SameSite=Lax.
func setSessionCookie(c echo.Context, token string) {
	req := c.Request()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   30 * 24 * 60 * 60, // 30 days in seconds
	})
}

// clearSessionCookie removes the session cookie by setting MaxAge to -1.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// --- Validation helpers ---

// validateRegisterRequest performs basic server-side validation on the
// registration payload. Returns an error message or empty string.
func validateRegisterRequest(req *RegisterRequest) string {
	if req.Email == "" {
		return "email is required"
	}
	if req.FirstName == "" {
		return "first name is required"
	}
	if req.LastName == "" {
		return "last name is required"
	}
	if req.Password == "" {
		return "password is required"
	}
	if len(req.Password) < 8 {
		return "password must be at least 8 characters"
	}
	if len(req.Password) > 128 {
		return "password must be at most 128 characters"
	}
	return ""
}
