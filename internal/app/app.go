// Package app is the application bootstrap and dependency injection root.
// It creates and holds all shared infrastructure (DB pool, Redis client,
// Echo instance) and wires together the feature packages. Repositories and
// services are constructed exactly once, after the store connections have
// resolved, and handed to the routing layer — no handler closes over a
// pending connection.
package app

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Michal-Forman/Luminary-backend/internal/apperror"
	"github.com/Michal-Forman/Luminary-backend/internal/config"
	"github.com/Michal-Forman/Luminary-backend/internal/middleware"
)

// App holds all shared dependencies and the Echo HTTP server instance.
// Created once at startup in main.go and used to register all routes.
type App struct {
	// Config holds the loaded application configuration.
	Config *config.Config

	// DB is the MariaDB connection pool shared by all repositories.
	DB *sql.DB

	// Redis is the Redis client backing server-side sessions.
	Redis *redis.Client

	// Echo is the HTTP server instance.
	Echo *echo.Echo
}

// New creates a new App instance with the given dependencies and configures
// the Echo server with global middleware and error handling.
func New(cfg *config.Config, db *sql.DB, rdb *redis.Client) *App {
	e := echo.New()

	// Disable Echo's default banner and startup message -- we log our own.
	e.HideBanner = true
	e.HidePort = true

	// Configure trusted reverse proxy IPs so c.RealIP() returns the actual
	// client IP instead of the proxy's IP. The per-IP rate limits on the
	// auth and chat endpoints depend on this.
	middleware.TrustedProxies(e, []string{
		"127.0.0.0/8",    // Localhost
		"10.0.0.0/8",     // Docker default bridge
		"172.16.0.0/12",  // Docker bridge (alternate range)
		"192.168.0.0/16", // Common LAN
		"fd00::/8",       // IPv6 private
	})

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Echo:   e,
	}

	// Register global middleware in order of execution.
	app.setupMiddleware()

	// Register the custom error handler that maps AppErrors to HTTP responses.
	e.HTTPErrorHandler = app.errorHandler

	return app
}

// setupMiddleware registers global middleware on the Echo instance.
// Order matters: outermost (recovery) runs first.
func (a *App) setupMiddleware() {
	// Panic recovery -- must be outermost to catch panics from all other middleware.
	a.Echo.Use(middleware.Recovery())

	// Request logging -- log every request with method, path, status, latency.
	a.Echo.Use(middleware.RequestLogger())

	// Security headers -- HSTS, X-Content-Type-Options, X-Frame-Options, etc.
	a.Echo.Use(middleware.SecurityHeaders())

	// CORS -- the web client is served from a different origin and sends
	// the session cookie with every request.
	a.Echo.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   []string{a.Config.FrontendOrigin},
		AllowCredentials: true,
	}))
}

// errorHandler is the custom Echo error handler. It maps domain errors
// (AppError) to JSON responses with the right status code, logging internal
// causes without ever exposing them to the client.
func (a *App) errorHandler(err error, c echo.Context) {
	// Don't double-write if response is already committed.
	if c.Response().Committed {
		return
	}

	// Echo's built-in HTTP errors (e.g., 404/405 from the router) are not
	// AppErrors; map them directly.
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		c.JSON(echoErr.Code, map[string]string{
			"error":   http.StatusText(echoErr.Code),
			"message": message,
		})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		// Log internal errors with the underlying cause.
		if appErr.Internal != nil {
			slog.Error("internal error",
				slog.String("type", appErr.Type),
				slog.String("message", appErr.Message),
				slog.Any("internal", appErr.Internal),
				slog.String("path", c.Request().URL.Path),
			)
		}
	} else {
		// Truly unexpected error -- log it.
		slog.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Request().URL.Path),
		)
	}

	// SafeCode/SafeMessage collapse anything that is not an AppError to a
	// generic 500, so infrastructure detail never reaches the client.
	code := apperror.SafeCode(err)
	c.JSON(code, map[string]string{
		"error":   http.StatusText(code),
		"message": apperror.SafeMessage(err),
	})
}

// Start begins listening for HTTP requests on the configured port.
func (a *App) Start() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)
	slog.Info("starting Luminary server",
		slog.String("addr", addr),
		slog.String("env", a.Config.Env),
	)
	return a.Echo.Start(addr)
}
