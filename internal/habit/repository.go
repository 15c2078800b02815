package habit

import (
	"context"
	"database/sql"
	"fmt"
)

// HabitRepository defines the data access contract for habits.
type HabitRepository interface {
	Create(ctx context.Context, habit *Habit) error
	ListByOwner(ctx context.Context, userID string) ([]Habit, error)
}

// habitRepository is the MariaDB implementation of HabitRepository.
type habitRepository struct {
	db *sql.DB
}

// NewHabitRepository creates a new MariaDB-backed habit repository.
func NewHabitRepository(db *sql.DB) HabitRepository {
	return &habitRepository{db: db}
}

// Create inserts a new habit.
func (r *habitRepository) Create(ctx context.Context, habit *Habit) error {
	query := `INSERT INTO habits (id, user_id, name, daily_goal, streak, created_at)
	          VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		habit.ID, habit.UserID, habit.Name, habit.DailyGoal, habit.Streak, habit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting habit: %w", err)
	}
	return nil
}

// ListByOwner returns all habits owned by the given user.
func (r *habitRepository) ListByOwner(ctx context.Context, userID string) ([]Habit, error) {
	query := `SELECT id, user_id, name, daily_goal, streak, created_at
	          FROM habits WHERE user_id = ?`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying habits: %w", err)
	}
	defer rows.Close()

	var habits []Habit
	for rows.Next() {
		var h Habit
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.DailyGoal, &h.Streak, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning habit row: %w", err)
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}
