package habit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Michal-Forman/Luminary-backend/internal/apperror"
)

// UserDirectory resolves resource owners. Implemented by the auth service.
type UserDirectory interface {
	FindIDByEmail(ctx context.Context, email string) (string, error)
	UserExists(ctx context.Context, id string) (bool, error)
}

// HabitService defines the business logic contract for habits.
type HabitService interface {
	Create(ctx context.Context, req CreateHabitRequest) (*Habit, error)
	ListByOwner(ctx context.Context, userID string) ([]Habit, error)
}

// habitService implements HabitService.
type habitService struct {
	repo  HabitRepository
	users UserDirectory
}

// NewHabitService creates a new habit service.
func NewHabitService(repo HabitRepository, users UserDirectory) HabitService {
	return &habitService{repo: repo, users: users}
}

// Create resolves the owner by email and persists a new habit with a zero
// streak.
func (s *habitService) Create(ctx context.Context, req CreateHabitRequest) (*Habit, error) {
	name := strings.TrimSpace(req.HabitName)
	if name == "" {
		return nil, apperror.NewValidation("habit name is required")
	}
	if req.HabitDailyGoal < 0 {
		return nil, apperror.NewValidation("daily goal must not be negative")
	}

	ownerID, err := s.users.FindIDByEmail(ctx, req.UserEmail)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("owner not found")
		}
		return nil, apperror.NewInternal(err)
	}

	habit := &Habit{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Name:      name,
		DailyGoal: req.HabitDailyGoal,
		Streak:    0,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return habit, nil
}

// ListByOwner returns a user's habits, verifying the owner exists first.
func (s *habitService) ListByOwner(ctx context.Context, userID string) ([]Habit, error) {
	exists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if !exists {
		return nil, apperror.NewNotFound("owner not found")
	}

	habits, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if habits == nil {
		habits = []Habit{}
	}
	return habits, nil
}
