package chat

import (
	"context"
	"database/sql"
	"fmt"
)

// MessageRepository defines the data access contract for chat messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	ListByOwner(ctx context.Context, userID string) ([]Message, error)
	DeleteByOwner(ctx context.Context, userID string) error
}

// messageRepository is the MariaDB implementation of MessageRepository.
type messageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new MariaDB-backed message repository.
func NewMessageRepository(db *sql.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create appends a message to a user's history.
func (r *messageRepository) Create(ctx context.Context, msg *Message) error {
	query := `INSERT INTO messages (id, user_id, body, texter, created_at)
	          VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.UserID, msg.Body, msg.Texter, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

// ListByOwner returns a user's messages in conversation order.
func (r *messageRepository) ListByOwner(ctx context.Context, userID string) ([]Message, error) {
	query := `SELECT id, user_id, body, texter, created_at
	          FROM messages WHERE user_id = ? ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Body, &m.Texter, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// DeleteByOwner clears a user's entire message history.
func (r *messageRepository) DeleteByOwner(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("deleting messages: %w", err)
	}
	return nil
}
