package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Michal-Forman/Luminary-backend/internal/apperror"
	"github.com/Michal-Forman/Luminary-backend/internal/config"
)

// --- Mock Repository ---

// mockMessageRepo implements MessageRepository with in-memory storage.
type mockMessageRepo struct {
	messages []Message

	createErr error
	listErr   error
	deleteErr error
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *Message) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *mockMessageRepo) ListByOwner(ctx context.Context, userID string) ([]Message, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []Message
	for _, msg := range m.messages {
		if msg.UserID == userID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *mockMessageRepo) DeleteByOwner(ctx context.Context, userID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	var kept []Message
	for _, msg := range m.messages {
		if msg.UserID != userID {
			kept = append(kept, msg)
		}
	}
	m.messages = kept
	return nil
}

// mockUsers implements UserDirectory for testing.
type mockUsers struct {
	userExistsFn func(ctx context.Context, id string) (bool, error)
}

func (m *mockUsers) UserExists(ctx context.Context, id string) (bool, error) {
	if m.userExistsFn != nil {
		return m.userExistsFn(ctx, id)
	}
	return true, nil
}

// --- Test Helpers ---

// newCompletionServer returns an httptest server that speaks the completion
// API schema, capturing the last request body for assertions.
func newCompletionServer(t *testing.T, reply string) (*httptest.Server, *completionRequest) {
	t.Helper()
	captured := &completionRequest{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected path /chat/completions, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
			t.Errorf("decoding request body: %v", err)
		}

		resp := completionResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message completionMessage `json:"message"`
		}{Message: completionMessage{Role: "assistant", Content: reply}})
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	return srv, captured
}

// newTestChatService wires a chat service against the given upstream URL.
func newTestChatService(repo *mockMessageRepo, users *mockUsers, baseURL string) ChatService {
	return NewChatService(repo, users, config.OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})
}

// assertAppError checks that err is an *apperror.AppError with the expected code.
func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// --- Converse Tests ---

func TestConverse_ReturnsReplyVerbatim(t *testing.T) {
	srv, captured := newCompletionServer(t, "That sounds like a lot to carry. What helped you get through today?")
	repo := &mockMessageRepo{}
	svc := newTestChatService(repo, &mockUsers{}, srv.URL)

	reply, err := svc.Converse(context.Background(), "user-123", "I had a rough day at work")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "That sounds like a lot to carry. What helped you get through today?" {
		t.Errorf("expected reply passed through verbatim, got %q", reply)
	}

	// The upstream request carries exactly two turns: the fixed persona as
	// the system turn, then the user's prompt.
	if captured.Model != "test-model" {
		t.Errorf("expected model test-model, got %s", captured.Model)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("expected 2 messages upstream, got %d", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" || captured.Messages[0].Content != persona {
		t.Errorf("expected persona system turn, got %+v", captured.Messages[0])
	}
	if captured.Messages[1].Role != "user" || captured.Messages[1].Content != "I had a rough day at work" {
		t.Errorf("expected user prompt turn, got %+v", captured.Messages[1])
	}
}

func TestConverse_PersistsBothTurns(t *testing.T) {
	srv, _ := newCompletionServer(t, "I'm glad you reached out.")
	repo := &mockMessageRepo{}
	svc := newTestChatService(repo, &mockUsers{}, srv.URL)

	_, err := svc.Converse(context.Background(), "user-123", "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.messages) != 2 {
		t.Fatalf("expected 2 persisted messages, got %d", len(repo.messages))
	}

	userMsg, therapistMsg := repo.messages[0], repo.messages[1]
	if userMsg.Texter != TexterUser || userMsg.Body != "Hello" {
		t.Errorf("expected user turn first, got %+v", userMsg)
	}
	if therapistMsg.Texter != TexterTherapist || therapistMsg.Body != "I'm glad you reached out." {
		t.Errorf("expected therapist turn second, got %+v", therapistMsg)
	}
	if !userMsg.CreatedAt.Before(therapistMsg.CreatedAt) {
		t.Error("expected user turn to sort before therapist turn")
	}
	if userMsg.UserID != "user-123" || therapistMsg.UserID != "user-123" {
		t.Error("expected both turns to belong to the prompting user")
	}
}

func TestConverse_EmptyPrompt(t *testing.T) {
	svc := newTestChatService(&mockMessageRepo{}, &mockUsers{}, "http://unused.invalid")

	_, err := svc.Converse(context.Background(), "user-123", "   ")
	assertAppError(t, err, 422)
}

func TestConverse_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	repo := &mockMessageRepo{}
	svc := newTestChatService(repo, &mockUsers{}, srv.URL)

	_, err := svc.Converse(context.Background(), "user-123", "Hello")
	assertAppError(t, err, 502)

	// A failed exchange leaves no history behind.
	if len(repo.messages) != 0 {
		t.Errorf("expected no persisted messages after upstream failure, got %d", len(repo.messages))
	}
}

func TestConverse_UpstreamUnreachable(t *testing.T) {
	// A closed server yields a connection error, not an HTTP status.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	svc := newTestChatService(&mockMessageRepo{}, &mockUsers{}, srv.URL)

	_, err := svc.Converse(context.Background(), "user-123", "Hello")
	assertAppError(t, err, 502)
}

func TestConverse_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionResponse{})
	}))
	t.Cleanup(srv.Close)

	svc := newTestChatService(&mockMessageRepo{}, &mockUsers{}, srv.URL)

	_, err := svc.Converse(context.Background(), "user-123", "Hello")
	assertAppError(t, err, 502)
}

func TestConverse_PersistenceFailureDoesNotClobberReply(t *testing.T) {
	srv, _ := newCompletionServer(t, "Here for you.")
	repo := &mockMessageRepo{createErr: errors.New("db write error")}
	svc := newTestChatService(repo, &mockUsers{}, srv.URL)

	reply, err := svc.Converse(context.Background(), "user-123", "Hello")
	if err != nil {
		t.Fatalf("expected reply despite persistence failure, got error: %v", err)
	}
	if reply != "Here for you." {
		t.Errorf("expected reply, got %q", reply)
	}
}

// --- History Tests ---

func TestHistory_OwnerNotFound(t *testing.T) {
	users := &mockUsers{
		userExistsFn: func(ctx context.Context, id string) (bool, error) {
			return false, nil
		},
	}
	svc := newTestChatService(&mockMessageRepo{}, users, "http://unused.invalid")

	_, err := svc.History(context.Background(), "ghost-user")
	assertAppError(t, err, 404)
}

func TestHistory_EmptyIsNotNil(t *testing.T) {
	svc := newTestChatService(&mockMessageRepo{}, &mockUsers{}, "http://unused.invalid")

	messages, err := svc.History(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if messages == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestHistory_ReturnsOwnMessagesOnly(t *testing.T) {
	repo := &mockMessageRepo{
		messages: []Message{
			{ID: "m1", UserID: "user-123", Body: "Hello", Texter: TexterUser},
			{ID: "m2", UserID: "user-456", Body: "Other user's message", Texter: TexterUser},
			{ID: "m3", UserID: "user-123", Body: "Hi there", Texter: TexterTherapist},
		},
	}
	svc := newTestChatService(repo, &mockUsers{}, "http://unused.invalid")

	messages, err := svc.History(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	for _, msg := range messages {
		if msg.UserID != "user-123" {
			t.Errorf("expected only user-123 messages, got one for %s", msg.UserID)
		}
	}
}

// --- ClearHistory Tests ---

func TestClearHistory(t *testing.T) {
	repo := &mockMessageRepo{
		messages: []Message{
			{ID: "m1", UserID: "user-123", Body: "Hello", Texter: TexterUser},
			{ID: "m2", UserID: "user-456", Body: "Keep me", Texter: TexterUser},
		},
	}
	svc := newTestChatService(repo, &mockUsers{}, "http://unused.invalid")

	if err := svc.ClearHistory(context.Background(), "user-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.messages) != 1 || repo.messages[0].UserID != "user-456" {
		t.Errorf("expected only other users' messages to survive, got %+v", repo.messages)
	}
}

func TestClearHistory_RepositoryError(t *testing.T) {
	repo := &mockMessageRepo{deleteErr: errors.New("db write error")}
	svc := newTestChatService(repo, &mockUsers{}, "http://unused.invalid")

	err := svc.ClearHistory(context.Background(), "user-123")
	assertAppError(t, err, 500)
}
