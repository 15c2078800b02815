package exercise

import (
	"context"
	"log/slog"
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

// ExerciseService defines the business logic contract for exercises and
// their progressions.
type ExerciseService interface {
	Create(ctx context.Context, req CreateExerciseRequest) (*Exercise, error)
	ListByOwner(ctx context.Context, userID string) ([]Exercise, error)
	Update(ctx context.Context, req UpdateExerciseRequest) error
	Delete(ctx context.Context, id string) error
	GetProgression(ctx context.Context, exerciseID string) ([]Sample, error)
}

// exerciseService implements ExerciseService.
type exerciseService struct {
	repo  ExerciseRepository
	progs ProgressionRepository
	users UserDirectory

	// now is swapped out by tests to simulate day rollover.
	now func() time.Time
}

// NewExerciseService creates a new exercise service.
func NewExerciseService(repo ExerciseRepository, progs ProgressionRepository, users UserDirectory) ExerciseService {
	return &exerciseService{
		repo:  repo,
		progs: progs,
		users: users,
		now:   time.Now,
	}
}

// today returns the calendar-day key for the current moment in the server's
// local time zone.
func (s *exerciseService) today() string {
	return s.now().Format(dateLayout)
}

// Create resolves the owner, persists the exercise, and seeds its
// progression with a single {weight, today} sample.
func (s *exerciseService) Create(ctx context.Context, req CreateExerciseRequest) (*Exercise, error) {
	name := strings.TrimSpace(req.ExerciseName)
	if name == "" {
		return nil, apperror.NewValidation("exercise name is required")
	}

	ownerID, err := s.users.FindIDByEmail(ctx, req.UserEmail)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("owner not found")
		}
		return nil, apperror.NewInternal(err)
	}

	ex := &Exercise{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Name:        name,
		Weight:      req.ExerciseWeight,
		Repetition1: req.Repetition1,
		Repetition2: req.Repetition2,
		Repetition3: req.Repetition3,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, ex); err != nil {
		return nil, apperror.NewInternal(err)
	}

	if err := s.seedProgression(ctx, ex); err != nil {
		return nil, apperror.NewInternal(err)
	}

	return ex, nil
}

// seedProgression creates the exercise's progression with its first sample.
func (s *exerciseService) seedProgression(ctx context.Context, ex *Exercise) error {
	p := &Progression{
		ID:         uuid.NewString(),
		ExerciseID: ex.ID,
		UserID:     ex.UserID,
	}
	if err := s.progs.Create(ctx, p); err != nil {
		return err
	}
	return s.progs.UpsertSample(ctx, p.ID, s.today(), ex.Weight)
}

// ListByOwner returns a user's exercises, verifying the owner exists first.
func (s *exerciseService) ListByOwner(ctx context.Context, userID string) ([]Exercise, error) {
	exists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if !exists {
		return nil, apperror.NewNotFound("owner not found")
	}

	exercises, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if exercises == nil {
		exercises = []Exercise{}
	}
	return exercises, nil
}

// Update replaces the exercise's fields and, when the weight actually
// changed, records today's sample: overwriting today's existing sample if
// one exists, appending otherwise. An unchanged weight is a successful
// no-op for the progression.
func (s *exerciseService) Update(ctx context.Context, req UpdateExerciseRequest) error {
	prior, err := s.repo.FindByID(ctx, req.ExerciseID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		return apperror.NewInternal(err)
	}

	// A repository may hand back a pointer into its own storage, which the
	// update below would mutate. Read the weight before writing.
	priorWeight := prior.Weight

	ex := &Exercise{
		ID:          prior.ID,
		UserID:      prior.UserID,
		Name:        strings.TrimSpace(req.ExerciseName),
		Weight:      req.ExerciseWeight,
		Repetition1: req.Repetition1,
		Repetition2: req.Repetition2,
		Repetition3: req.Repetition3,
	}
	if ex.Name == "" {
		ex.Name = prior.Name
	}

	if err := s.repo.Update(ctx, ex); err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		return apperror.NewInternal(err)
	}

	if req.ExerciseWeight == priorWeight {
		return nil
	}

	return s.recordWeightChange(ctx, prior, req.ExerciseWeight)
}

// recordWeightChange upserts today's progression sample for the exercise.
// An exercise whose progression was never seeded gets one lazily here —
// losing the progression record should not make weight updates fail forever.
func (s *exerciseService) recordWeightChange(ctx context.Context, ex *Exercise, weight float64) error {
	p, err := s.progs.FindByExercise(ctx, ex.ID)
	if err != nil {
		if !apperror.IsNotFound(err) {
			return apperror.NewInternal(err)
		}

		slog.Warn("exercise has no progression, seeding one",
			slog.String("exercise_id", ex.ID),
		)
		p = &Progression{
			ID:         uuid.NewString(),
			ExerciseID: ex.ID,
			UserID:     ex.UserID,
		}
		if err := s.progs.Create(ctx, p); err != nil {
			return apperror.NewInternal(err)
		}
	}

	if err := s.progs.UpsertSample(ctx, p.ID, s.today(), weight); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}

// Delete removes an exercise (and, through the schema, its progression).
// A missing id is reported as NotFound but callers treat it as idempotent.
func (s *exerciseService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil && !apperror.IsNotFound(err) {
		return apperror.NewInternal(err)
	}
	return err
}

// GetProgression returns the sample sequence for an exercise, oldest day
// first. An exercise without a progression yields 404.
func (s *exerciseService) GetProgression(ctx context.Context, exerciseID string) ([]Sample, error) {
	p, err := s.progs.FindByExercise(ctx, exerciseID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.NewInternal(err)
	}

	samples, err := s.progs.ListSamples(ctx, p.ID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if samples == nil {
		samples = []Sample{}
	}
	return samples, nil
}
