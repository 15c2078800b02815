package journal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Michal-Forman/Luminary-backend/internal/apperror"
	"github.com/Michal-Forman/Luminary-backend/internal/sanitize"
)

// UserDirectory resolves resource owners. Implemented by the auth service.
type UserDirectory interface {
	FindIDByEmail(ctx context.Context, email string) (string, error)
	UserExists(ctx context.Context, id string) (bool, error)
}

// JournalService defines the business logic contract for journal entries.
type JournalService interface {
	Create(ctx context.Context, req CreateJournalRequest) (*Journal, error)
	ListByOwner(ctx context.Context, userID string) ([]Journal, error)
	Delete(ctx context.Context, id string) error
}

// journalService implements JournalService.
type journalService struct {
	repo  JournalRepository
	users UserDirectory
}

// NewJournalService creates a new journal service.
func NewJournalService(repo JournalRepository, users UserDirectory) JournalService {
	return &journalService{repo: repo, users: users}
}

// Create resolves the owner by email and persists a new entry. An unknown
// email is the caller's fault, not ours: 404.
func (s *journalService) Create(ctx context.Context, req CreateJournalRequest) (*Journal, error) {
	content := sanitize.Text(req.Content)
	if content == "" {
		return nil, apperror.NewValidation("content is required")
	}
	if strings.TrimSpace(req.Date) == "" {
		return nil, apperror.NewValidation("date is required")
	}

	ownerID, err := s.users.FindIDByEmail(ctx, req.UserEmail)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("owner not found")
		}
		return nil, apperror.NewInternal(err)
	}

	entry := &Journal{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Mood:      req.Mood,
		Content:   content,
		Date:      strings.TrimSpace(req.Date),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return entry, nil
}

// ListByOwner returns a user's entries. The owner is verified first so a
// non-existent user yields 404 instead of an empty 200.
func (s *journalService) ListByOwner(ctx context.Context, userID string) ([]Journal, error) {
	exists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if !exists {
		return nil, apperror.NewNotFound("owner not found")
	}

	entries, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if entries == nil {
		entries = []Journal{}
	}
	return entries, nil
}

// Delete removes an entry by id. A missing id is reported as NotFound but
// callers treat the delete as idempotent.
func (s *journalService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil && !apperror.IsNotFound(err) {
		return apperror.NewInternal(err)
	}
	return err
}
