package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Michal-Forman/Luminary-backend/internal/apperror"
)

// JournalRepository defines the data access contract for journal entries.
type JournalRepository interface {
	Create(ctx context.Context, entry *Journal) error
	ListByOwner(ctx context.Context, userID string) ([]Journal, error)
	Delete(ctx context.Context, id string) error
}

// journalRepository is the MariaDB implementation of JournalRepository.
type journalRepository struct {
	db *sql.DB
}

// NewJournalRepository creates a new MariaDB-backed journal repository.
func NewJournalRepository(db *sql.DB) JournalRepository {
	return &journalRepository{db: db}
}

// Create inserts a new journal entry.
func (r *journalRepository) Create(ctx context.Context, entry *Journal) error {
	query := `INSERT INTO journals (id, user_id, mood, content, entry_date, created_at)
	          VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.Mood, entry.Content, entry.Date, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}
	return nil
}

// ListByOwner returns all journal entries owned by the given user.
func (r *journalRepository) ListByOwner(ctx context.Context, userID string) ([]Journal, error) {
	query := `SELECT id, user_id, mood, content, entry_date, created_at
	          FROM journals WHERE user_id = ?`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying journal entries: %w", err)
	}
	defer rows.Close()

	var entries []Journal
	for rows.Next() {
		var j Journal
		if err := rows.Scan(&j.ID, &j.UserID, &j.Mood, &j.Content, &j.Date, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		entries = append(entries, j)
	}
	return entries, rows.Err()
}

// Delete removes a journal entry by id.
func (r *journalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM journals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting journal entry: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("journal entry not found")
	}
	return nil
}
