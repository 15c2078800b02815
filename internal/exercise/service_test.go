package exercise

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Michal-Forman/Luminary-backend/internal/apperror"
)

// --- Mock Repositories ---

// mockExerciseRepo implements ExerciseRepository for testing.
type mockExerciseRepo struct {
	createFn      func(ctx context.Context, ex *Exercise) error
	findByIDFn    func(ctx context.Context, id string) (*Exercise, error)
	listByOwnerFn func(ctx context.Context, userID string) ([]Exercise, error)
	updateFn      func(ctx context.Context, ex *Exercise) error
	deleteFn      func(ctx context.Context, id string) error
}

func (m *mockExerciseRepo) Create(ctx context.Context, ex *Exercise) error {
	if m.createFn != nil {
		return m.createFn(ctx, ex)
	}
	return nil
}

func (m *mockExerciseRepo) FindByID(ctx context.Context, id string) (*Exercise, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("exercise not found")
}

func (m *mockExerciseRepo) ListByOwner(ctx context.Context, userID string) ([]Exercise, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockExerciseRepo) Update(ctx context.Context, ex *Exercise) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, ex)
	}
	return nil
}

func (m *mockExerciseRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockProgressionRepo implements ProgressionRepository with in-memory sample
// storage that mirrors the UNIQUE (progression_id, sample_date) upsert: one
// sample per day, a second write for the same day overwrites the weight.
type mockProgressionRepo struct {
	progressions map[string]*Progression // keyed by exercise id
	weights      map[string]float64      // keyed by progression id + date
	order        []string                // date keys in first-write order

	createErr error
	upsertErr error
}

func newMockProgressionRepo() *mockProgressionRepo {
	return &mockProgressionRepo{
		progressions: make(map[string]*Progression),
		weights:      make(map[string]float64),
	}
}

func (m *mockProgressionRepo) Create(ctx context.Context, p *Progression) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.progressions[p.ExerciseID] = p
	return nil
}

func (m *mockProgressionRepo) FindByExercise(ctx context.Context, exerciseID string) (*Progression, error) {
	p, ok := m.progressions[exerciseID]
	if !ok {
		return nil, apperror.NewNotFound("progression not found")
	}
	return p, nil
}

func (m *mockProgressionRepo) UpsertSample(ctx context.Context, progressionID, date string, weight float64) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	key := progressionID + "|" + date
	if _, exists := m.weights[key]; !exists {
		m.order = append(m.order, key)
	}
	m.weights[key] = weight
	return nil
}

func (m *mockProgressionRepo) ListSamples(ctx context.Context, progressionID string) ([]Sample, error) {
	var samples []Sample
	prefix := progressionID + "|"
	for _, key := range m.order {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			samples = append(samples, Sample{
				Weight: m.weights[key],
				Date:   key[len(prefix):],
			})
		}
	}
	return samples, nil
}

// mockUsers implements UserDirectory for testing.
type mockUsers struct {
	findIDByEmailFn func(ctx context.Context, email string) (string, error)
	userExistsFn    func(ctx context.Context, id string) (bool, error)
}

func (m *mockUsers) FindIDByEmail(ctx context.Context, email string) (string, error) {
	if m.findIDByEmailFn != nil {
		return m.findIDByEmailFn(ctx, email)
	}
	return "user-123", nil
}

func (m *mockUsers) UserExists(ctx context.Context, id string) (bool, error) {
	if m.userExistsFn != nil {
		return m.userExistsFn(ctx, id)
	}
	return true, nil
}

// --- Test Helpers ---

// newTestExerciseService wires the mocks with a fixed clock. Tests that need
// day rollover reassign svc.now directly.
func newTestExerciseService(repo *mockExerciseRepo, progs *mockProgressionRepo, users *mockUsers) *exerciseService {
	return &exerciseService{
		repo:  repo,
		progs: progs,
		users: users,
		now:   func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) },
	}
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

// --- Create Tests ---

func TestCreate_SeedsProgression(t *testing.T) {
	repo := &mockExerciseRepo{}
	progs := newMockProgressionRepo()
	svc := newTestExerciseService(repo, progs, &mockUsers{})

	ex, err := svc.Create(context.Background(), CreateExerciseRequest{
		ExerciseName:   "Bench Press",
		ExerciseWeight: 60,
		Repetition1:    8,
		Repetition2:    8,
		Repetition3:    6,
		UserEmail:      "alice@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.ID == "" {
		t.Error("expected exercise ID to be generated")
	}
	if ex.UserID != "user-123" {
		t.Errorf("expected owner user-123, got %s", ex.UserID)
	}

	p, err := progs.FindByExercise(context.Background(), ex.ID)
	if err != nil {
		t.Fatalf("expected progression to be seeded: %v", err)
	}

	samples, _ := progs.ListSamples(context.Background(), p.ID)
	if len(samples) != 1 {
		t.Fatalf("expected 1 seeded sample, got %d", len(samples))
	}
	if samples[0].Weight != 60 {
		t.Errorf("expected seeded weight 60, got %v", samples[0].Weight)
	}
	if samples[0].Date != "2026-03-14" {
		t.Errorf("expected seeded date 2026-03-14, got %s", samples[0].Date)
	}
}

func TestCreate_OwnerNotFound(t *testing.T) {
	users := &mockUsers{
		findIDByEmailFn: func(ctx context.Context, email string) (string, error) {
			return "", apperror.NewNotFound("user not found")
		},
	}
	svc := newTestExerciseService(&mockExerciseRepo{}, newMockProgressionRepo(), users)

	_, err := svc.Create(context.Background(), CreateExerciseRequest{
		ExerciseName: "Squat",
		UserEmail:    "nobody@example.com",
	})
	assertAppError(t, err, 404)
}

func TestCreate_EmptyName(t *testing.T) {
	svc := newTestExerciseService(&mockExerciseRepo{}, newMockProgressionRepo(), &mockUsers{})

	_, err := svc.Create(context.Background(), CreateExerciseRequest{
		ExerciseName: "   ",
		UserEmail:    "alice@example.com",
	})
	assertAppError(t, err, 422)
}

// --- Update / Progression Tests ---

// seededService creates a service holding one exercise with a progression,
// returning the service and the exercise for update tests.
func seededService(t *testing.T) (*exerciseService, *mockProgressionRepo, *Exercise) {
	t.Helper()

	stored := &Exercise{
		ID:     "ex-1",
		UserID: "user-123",
		Name:   "Bench Press",
		Weight: 60,
	}
	repo := &mockExerciseRepo{
		findByIDFn: func(ctx context.Context, id string) (*Exercise, error) {
			if id == stored.ID {
				// A DB scan produces a fresh struct per call.
				snapshot := *stored
				return &snapshot, nil
			}
			return nil, apperror.NewNotFound("exercise not found")
		},
		updateFn: func(ctx context.Context, ex *Exercise) error {
			stored.Name = ex.Name
			stored.Weight = ex.Weight
			return nil
		},
	}

	progs := newMockProgressionRepo()
	svc := newTestExerciseService(repo, progs, &mockUsers{})

	// Seed the progression the way Create would.
	progs.Create(context.Background(), &Progression{ID: "prog-1", ExerciseID: "ex-1", UserID: "user-123"})
	progs.UpsertSample(context.Background(), "prog-1", svc.today(), stored.Weight)

	return svc, progs, stored
}

func TestUpdate_SameDayOverwritesSample(t *testing.T) {
	svc, progs, _ := seededService(t)

	// Two weight changes on the same day must leave exactly one sample for
	// that day, holding the latest weight.
	for _, w := range []float64{65, 70} {
		err := svc.Update(context.Background(), UpdateExerciseRequest{
			ExerciseID:     "ex-1",
			ExerciseName:   "Bench Press",
			ExerciseWeight: w,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	samples, _ := progs.ListSamples(context.Background(), "prog-1")
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample after same-day updates, got %d", len(samples))
	}
	if samples[0].Weight != 70 {
		t.Errorf("expected latest weight 70, got %v", samples[0].Weight)
	}
}

func TestUpdate_NextDayAppendsSample(t *testing.T) {
	svc, progs, _ := seededService(t)

	err := svc.Update(context.Background(), UpdateExerciseRequest{
		ExerciseID:     "ex-1",
		ExerciseName:   "Bench Press",
		ExerciseWeight: 65,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Roll the clock to the next day and change the weight again.
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }
	err = svc.Update(context.Background(), UpdateExerciseRequest{
		ExerciseID:     "ex-1",
		ExerciseName:   "Bench Press",
		ExerciseWeight: 70,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	samples, _ := progs.ListSamples(context.Background(), "prog-1")
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples across two days, got %d", len(samples))
	}
	if samples[0].Date != "2026-03-14" || samples[1].Date != "2026-03-15" {
		t.Errorf("expected consecutive day keys, got %s then %s", samples[0].Date, samples[1].Date)
	}
	if samples[1].Weight != 70 {
		t.Errorf("expected day-two weight 70, got %v", samples[1].Weight)
	}
}

func TestUpdate_UnchangedWeightSkipsProgression(t *testing.T) {
	svc, progs, stored := seededService(t)

	err := svc.Update(context.Background(), UpdateExerciseRequest{
		ExerciseID:     "ex-1",
		ExerciseName:   "Incline Bench Press",
		ExerciseWeight: stored.Weight, // Same weight, only the name changes.
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Name != "Incline Bench Press" {
		t.Errorf("expected name to update, got %s", stored.Name)
	}

	samples, _ := progs.ListSamples(context.Background(), "prog-1")
	if len(samples) != 1 {
		t.Errorf("expected seed sample only, got %d samples", len(samples))
	}
}

func TestUpdate_MissingProgressionSeededLazily(t *testing.T) {
	svc, progs, _ := seededService(t)

	// Simulate an exercise whose progression record was lost.
	delete(progs.progressions, "ex-1")

	err := svc.Update(context.Background(), UpdateExerciseRequest{
		ExerciseID:     "ex-1",
		ExerciseName:   "Bench Press",
		ExerciseWeight: 80,
	})
	if err != nil {
		t.Fatalf("expected lazy seeding, got error: %v", err)
	}

	p, err := progs.FindByExercise(context.Background(), "ex-1")
	if err != nil {
		t.Fatalf("expected progression to be re-created: %v", err)
	}
	samples, _ := progs.ListSamples(context.Background(), p.ID)
	if len(samples) != 1 || samples[0].Weight != 80 {
		t.Errorf("expected one sample at weight 80, got %+v", samples)
	}
}

func TestUpdate_WeightChangeWithLiveRepoRecord(t *testing.T) {
	// Some repositories return a pointer to the record they hold, so the
	// Update call mutates the same struct FindByID returned. The weight
	// comparison must use the value read before the write, or the change
	// looks like a no-op and the progression is never touched.
	stored := &Exercise{ID: "ex-1", UserID: "user-123", Name: "Squat", Weight: 100}
	repo := &mockExerciseRepo{
		findByIDFn: func(ctx context.Context, id string) (*Exercise, error) {
			return stored, nil
		},
		updateFn: func(ctx context.Context, ex *Exercise) error {
			*stored = *ex
			return nil
		},
	}

	progs := newMockProgressionRepo()
	svc := newTestExerciseService(repo, progs, &mockUsers{})
	progs.Create(context.Background(), &Progression{ID: "prog-1", ExerciseID: "ex-1", UserID: "user-123"})
	progs.UpsertSample(context.Background(), "prog-1", svc.today(), stored.Weight)

	err := svc.Update(context.Background(), UpdateExerciseRequest{
		ExerciseID:     "ex-1",
		ExerciseName:   "Squat",
		ExerciseWeight: 110,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	samples, _ := progs.ListSamples(context.Background(), "prog-1")
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	if samples[0].Weight != 110 {
		t.Errorf("expected today's sample overwritten to 110, got %v", samples[0].Weight)
	}
}

func TestUpdate_ExerciseNotFound(t *testing.T) {
	svc := newTestExerciseService(&mockExerciseRepo{}, newMockProgressionRepo(), &mockUsers{})

	err := svc.Update(context.Background(), UpdateExerciseRequest{
		ExerciseID:     "no-such-exercise",
		ExerciseWeight: 50,
	})
	assertAppError(t, err, 404)
}

// --- List / Delete / Progression Read Tests ---

func TestListByOwner_OwnerNotFound(t *testing.T) {
	users := &mockUsers{
		userExistsFn: func(ctx context.Context, id string) (bool, error) {
			return false, nil
		},
	}
	svc := newTestExerciseService(&mockExerciseRepo{}, newMockProgressionRepo(), users)

	_, err := svc.ListByOwner(context.Background(), "ghost-user")
	assertAppError(t, err, 404)
}

func TestListByOwner_EmptyIsNotNil(t *testing.T) {
	svc := newTestExerciseService(&mockExerciseRepo{}, newMockProgressionRepo(), &mockUsers{})

	exercises, err := svc.ListByOwner(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exercises == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(exercises) != 0 {
		t.Errorf("expected no exercises, got %d", len(exercises))
	}
}

func TestDelete_MissingReportsNotFound(t *testing.T) {
	repo := &mockExerciseRepo{
		deleteFn: func(ctx context.Context, id string) error {
			return apperror.NewNotFound("exercise not found")
		},
	}
	svc := newTestExerciseService(repo, newMockProgressionRepo(), &mockUsers{})

	err := svc.Delete(context.Background(), "no-such-exercise")
	assertAppError(t, err, 404)
}

func TestGetProgression_NotFound(t *testing.T) {
	svc := newTestExerciseService(&mockExerciseRepo{}, newMockProgressionRepo(), &mockUsers{})

	_, err := svc.GetProgression(context.Background(), "no-such-exercise")
	assertAppError(t, err, 404)
}

func TestGetProgression_ReturnsSamplesInOrder(t *testing.T) {
	svc, progs, _ := seededService(t)

	progs.UpsertSample(context.Background(), "prog-1", "2026-03-15", 65)
	progs.UpsertSample(context.Background(), "prog-1", "2026-03-16", 70)

	samples, err := svc.GetProgression(context.Background(), "ex-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Date <= samples[i-1].Date {
			t.Errorf("expected ascending day order, got %s before %s", samples[i-1].Date, samples[i].Date)
		}
	}
}
