package exercise

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Michal-Forman/Luminary-backend/internal/apperror"
)

// ExerciseRepository defines the data access contract for exercises.
type ExerciseRepository interface {
	Create(ctx context.Context, ex *Exercise) error
	FindByID(ctx context.Context, id string) (*Exercise, error)
	ListByOwner(ctx context.Context, userID string) ([]Exercise, error)
	Update(ctx context.Context, ex *Exercise) error
	Delete(ctx context.Context, id string) error
}

// ProgressionRepository defines the data access contract for progressions
// and their per-day samples.
type ProgressionRepository interface {
	Create(ctx context.Context, p *Progression) error
	FindByExercise(ctx context.Context, exerciseID string) (*Progression, error)

	// UpsertSample writes the weight for one calendar day. If the
	// progression already holds a sample for that date, only its weight is
	// overwritten; otherwise a new sample is appended. The UNIQUE key on
	// (progression_id, sample_date) makes this atomic, so two concurrent
	// writes for the same day can never produce two samples.
	UpsertSample(ctx context.Context, progressionID, date string, weight float64) error

	// ListSamples returns the samples in calendar-day order, which for
	// server-generated day keys is also first-write order.
	ListSamples(ctx context.Context, progressionID string) ([]Sample, error)
}

// exerciseRepository is the MariaDB implementation of ExerciseRepository.
type exerciseRepository struct {
	db *sql.DB
}

// NewExerciseRepository creates a new MariaDB-backed exercise repository.
func NewExerciseRepository(db *sql.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

// exerciseColumns is the SELECT column list for exercise queries.
const exerciseColumns = `id, user_id, name, weight, repetition1, repetition2, repetition3, created_at`

// Create inserts a new exercise.
func (r *exerciseRepository) Create(ctx context.Context, ex *Exercise) error {
	query := `INSERT INTO exercises (id, user_id, name, weight, repetition1, repetition2, repetition3, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		ex.ID, ex.UserID, ex.Name, ex.Weight,
		ex.Repetition1, ex.Repetition2, ex.Repetition3, ex.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting exercise: %w", err)
	}
	return nil
}

// FindByID retrieves an exercise by id.
func (r *exerciseRepository) FindByID(ctx context.Context, id string) (*Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = ?`

	ex := &Exercise{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ex.ID, &ex.UserID, &ex.Name, &ex.Weight,
		&ex.Repetition1, &ex.Repetition2, &ex.Repetition3, &ex.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("exercise not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scanning exercise: %w", err)
	}
	return ex, nil
}

// ListByOwner returns all exercises owned by the given user.
func (r *exerciseRepository) ListByOwner(ctx context.Context, userID string) ([]Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE user_id = ?`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var exercises []Exercise
	for rows.Next() {
		var ex Exercise
		if err := rows.Scan(
			&ex.ID, &ex.UserID, &ex.Name, &ex.Weight,
			&ex.Repetition1, &ex.Repetition2, &ex.Repetition3, &ex.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning exercise row: %w", err)
		}
		exercises = append(exercises, ex)
	}
	return exercises, rows.Err()
}

// Update replaces an exercise's name, weight, and repetitions.
func (r *exerciseRepository) Update(ctx context.Context, ex *Exercise) error {
	query := `UPDATE exercises
	          SET name = ?, weight = ?, repetition1 = ?, repetition2 = ?, repetition3 = ?
	          WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		ex.Name, ex.Weight, ex.Repetition1, ex.Repetition2, ex.Repetition3, ex.ID,
	)
	if err != nil {
		return fmt.Errorf("updating exercise: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		// RowsAffected is also 0 when the row exists but nothing changed;
		// re-check existence before reporting NotFound.
		if _, findErr := r.FindByID(ctx, ex.ID); findErr != nil {
			return findErr
		}
	}
	return nil
}

// Delete removes an exercise. The progression and its samples go with it
// via ON DELETE CASCADE.
func (r *exerciseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("exercise not found")
	}
	return nil
}

// progressionRepository is the MariaDB implementation of ProgressionRepository.
type progressionRepository struct {
	db *sql.DB
}

// NewProgressionRepository creates a new MariaDB-backed progression repository.
func NewProgressionRepository(db *sql.DB) ProgressionRepository {
	return &progressionRepository{db: db}
}

// Create inserts a new (empty) progression for an exercise.
func (r *progressionRepository) Create(ctx context.Context, p *Progression) error {
	query := `INSERT INTO exercise_progressions (id, exercise_id, user_id) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, p.ID, p.ExerciseID, p.UserID)
	if err != nil {
		return fmt.Errorf("inserting progression: %w", err)
	}
	return nil
}

// FindByExercise retrieves the progression belonging to an exercise.
func (r *progressionRepository) FindByExercise(ctx context.Context, exerciseID string) (*Progression, error) {
	query := `SELECT id, exercise_id, user_id FROM exercise_progressions WHERE exercise_id = ?`

	p := &Progression{}
	err := r.db.QueryRowContext(ctx, query, exerciseID).Scan(&p.ID, &p.ExerciseID, &p.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("progression not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scanning progression: %w", err)
	}
	return p, nil
}

// UpsertSample writes one day's weight, appending or overwriting in a single
// statement.
func (r *progressionRepository) UpsertSample(ctx context.Context, progressionID, date string, weight float64) error {
	query := `INSERT INTO progression_samples (id, progression_id, sample_date, weight)
	          VALUES (?, ?, ?, ?)
	          ON DUPLICATE KEY UPDATE weight = VALUES(weight)`

	_, err := r.db.ExecContext(ctx, query, uuid.NewString(), progressionID, date, weight)
	if err != nil {
		return fmt.Errorf("upserting progression sample: %w", err)
	}
	return nil
}

// ListSamples returns a progression's samples in calendar-day order.
func (r *progressionRepository) ListSamples(ctx context.Context, progressionID string) ([]Sample, error) {
	query := `SELECT weight, sample_date FROM progression_samples
	          WHERE progression_id = ? ORDER BY sample_date ASC`

	rows, err := r.db.QueryContext(ctx, query, progressionID)
	if err != nil {
		return nil, fmt.Errorf("querying progression samples: %w", err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var s Sample
		var day time.Time
		if err := rows.Scan(&s.Weight, &day); err != nil {
			return nil, fmt.Errorf("scanning progression sample: %w", err)
		}
		s.Date = day.Format(dateLayout)
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
