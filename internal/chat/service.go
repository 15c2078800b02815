package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Michal-Forman/Luminary-backend/internal/apperror"
	"github.com/Michal-Forman/Luminary-backend/internal/config"
	"github.com/Michal-Forman/Luminary-backend/internal/sanitize"
)

// persona is the fixed system prompt sent with every therapist request.
// Three parts: role, method, boundaries. The user's prompt is always the
// sole user turn — no prior conversation is replayed upstream.
const persona = "You are a warm, supportive virtual therapist inside a personal wellbeing app. " +
	"Listen carefully, reflect the user's feelings back to them, and offer gentle, practical suggestions " +
	"grounded in everyday cognitive-behavioral techniques. " +
	"You are not a medical professional: never diagnose, never recommend medication, and encourage the user " +
	"to seek licensed help for anything serious."

// UserDirectory resolves resource owners. Implemented by the auth service.
type UserDirectory interface {
	UserExists(ctx context.Context, id string) (bool, error)
}

// ChatService defines the business logic contract for the therapist chat.
type ChatService interface {
	// Converse sends the prompt upstream and returns the reply verbatim,
	// persisting both turns in the user's history.
	Converse(ctx context.Context, userID, prompt string) (string, error)
	History(ctx context.Context, userID string) ([]Message, error)
	ClearHistory(ctx context.Context, userID string) error
}

// chatService implements ChatService against an OpenAI-compatible
// chat-completions endpoint.
type chatService struct {
	repo   MessageRepository
	users  UserDirectory
	client *http.Client
	cfg    config.OpenAIConfig
}

// NewChatService creates a new chat service. The HTTP client's timeout
// bounds the single upstream call; there is no retry and no streaming.
func NewChatService(repo MessageRepository, users UserDirectory, cfg config.OpenAIConfig) ChatService {
	return &chatService{
		repo:   repo,
		users:  users,
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
	}
}

// --- Upstream wire types (OpenAI chat-completions schema) ---

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
}

// Converse proxies one prompt to the completion API. The reply text is
// returned unmodified; persistence failures are logged but never clobber a
// reply the user is already owed.
func (s *chatService) Converse(ctx context.Context, userID, prompt string) (string, error) {
	prompt = sanitize.Text(prompt)
	if prompt == "" {
		return "", apperror.NewValidation("prompt is required")
	}

	reply, err := s.complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	s.appendExchange(ctx, userID, prompt, reply)

	return reply, nil
}

// complete performs the single upstream chat-completions call.
func (s *chatService) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model: s.cfg.Model,
		Messages: []completionMessage{
			{Role: "system", Content: persona},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("marshaling completion request: %w", err))
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("building completion request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", apperror.NewBadGateway(fmt.Errorf("calling completion API: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a bounded slice of the error body for the log line only;
		// the client just sees 502.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", apperror.NewBadGateway(
			fmt.Errorf("completion API returned %d: %s", resp.StatusCode, detail))
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperror.NewBadGateway(fmt.Errorf("decoding completion response: %w", err))
	}
	if len(parsed.Choices) == 0 {
		return "", apperror.NewBadGateway(fmt.Errorf("completion response has no choices"))
	}

	return parsed.Choices[0].Message.Content, nil
}

// appendExchange records both turns of the exchange. Failures here are
// non-critical: the reply already exists, so log and move on.
func (s *chatService) appendExchange(ctx context.Context, userID, prompt, reply string) {
	now := time.Now().UTC()

	userMsg := &Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		Body:      prompt,
		Texter:    TexterUser,
		CreatedAt: now,
	}
	therapistMsg := &Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		Body:      reply,
		Texter:    TexterTherapist,
		CreatedAt: now.Add(time.Millisecond), // Keep conversation order stable.
	}

	for _, msg := range []*Message{userMsg, therapistMsg} {
		if err := s.repo.Create(ctx, msg); err != nil {
			slog.Warn("failed to persist chat message",
				slog.String("user_id", userID),
				slog.String("texter", msg.Texter),
				slog.Any("error", err),
			)
		}
	}
}

// History returns a user's conversation, verifying the owner exists first.
func (s *chatService) History(ctx context.Context, userID string) ([]Message, error) {
	exists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if !exists {
		return nil, apperror.NewNotFound("owner not found")
	}

	messages, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if messages == nil {
		messages = []Message{}
	}
	return messages, nil
}

// ClearHistory deletes a user's entire conversation.
func (s *chatService) ClearHistory(ctx context.Context, userID string) error {
	if err := s.repo.DeleteByOwner(ctx, userID); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}
