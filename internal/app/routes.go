package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Michal-Forman/Luminary-backend/internal/auth"
	"github.com/Michal-Forman/Luminary-backend/internal/chat"
	"github.com/Michal-Forman/Luminary-backend/internal/exercise"
	"github.com/Michal-Forman/Luminary-backend/internal/habit"
	"github.com/Michal-Forman/Luminary-backend/internal/journal"
)

// RegisterRoutes constructs every repository, service, and handler, then
// registers all application routes. This is the single place the object
// graph is assembled, so the dependency flow between features stays visible.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// --- Public utility routes ---

	// Liveness probe for the frontend's connectivity check.
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Luminary API"})
	})

	// Health check endpoint for container orchestration.
	e.GET("/healthz", func(c echo.Context) error {
		if err := a.DB.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "db unreachable"})
		}
		if err := a.Redis.Ping(c.Request().Context()).Err(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "redis unreachable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- Auth ---
	userRepo := auth.NewUserRepository(a.DB)
	authSvc := auth.NewAuthService(userRepo, a.Redis, a.Config.Auth.SessionTTL)
	auth.RegisterRoutes(e, auth.NewHandler(authSvc), authSvc)

	// --- Journal ---
	journalSvc := journal.NewJournalService(journal.NewJournalRepository(a.DB), authSvc)
	journal.RegisterRoutes(e, journal.NewHandler(journalSvc))

	// --- Habits ---
	habitSvc := habit.NewHabitService(habit.NewHabitRepository(a.DB), authSvc)
	habit.RegisterRoutes(e, habit.NewHandler(habitSvc))

	// --- Exercises & progressions ---
	exerciseSvc := exercise.NewExerciseService(
		exercise.NewExerciseRepository(a.DB),
		exercise.NewProgressionRepository(a.DB),
		authSvc,
	)
	exercise.RegisterRoutes(e, exercise.NewHandler(exerciseSvc))

	// --- Therapist chat ---
	chatSvc := chat.NewChatService(chat.NewMessageRepository(a.DB), authSvc, a.Config.OpenAI)
	chat.RegisterRoutes(e, chat.NewHandler(chatSvc), authSvc)
}
