package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/argon2"

	"github.com/Michal-Forman/Luminary-backend/internal/apperror"
)

// sessionKeyPrefix is the Redis key prefix for session data.
const sessionKeyPrefix = "session:"

// sessionTokenBytes is the number of random bytes in a session token.
// 32 bytes = 256 bits of entropy, hex-encoded to 64 characters.
const sessionTokenBytes = 32

// argon2id parameters following OWASP recommendations for argon2id:
// memory=64MB, iterations=3, parallelism=4. Sized for the modest VPS this
// service runs on while staying expensive enough to resist offline cracking.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024 // 64 MB in KiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository directly.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*Principal, error)
	Login(ctx context.Context, input LoginInput) (token string, principal *Principal, err error)

	// ValidateSession deserializes a session token back into a Principal.
	// The user record is re-fetched, so a token whose user has vanished
	// reads as logged out, never as an internal fault.
	ValidateSession(ctx context.Context, token string) (*Principal, error)
	DestroySession(ctx context.Context, token string) error

	// Owner resolution for the resource packages.
	FindIDByEmail(ctx context.Context, email string) (string, error)
	UserExists(ctx context.Context, id string) (bool, error)
}

// authService implements AuthService with argon2id hashing and Redis sessions.
type authService struct {
	repo       UserRepository
	redis      *redis.Client
	sessionTTL time.Duration
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, rdb *redis.Client, sessionTTL time.Duration) AuthService {
	return &authService{
		repo:       repo,
		redis:      rdb,
		sessionTTL: sessionTTL,
	}
}

// Register creates a new user account. It validates uniqueness, hashes the
// password with argon2id, generates a UUID, and persists the user. The
// returned Principal carries only public profile fields.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*Principal, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Check if email is already taken before doing expensive hashing.
	// The UNIQUE index on users.email is the real guarantee; this check
	// just produces the friendly 409 in the common case.
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking email: %w", err))
	}
	if exists {
		return nil, apperror.NewConflict("an account with this email already exists")
	}

	// Hash the password with argon2id (memory-hard, GPU-resistant).
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// The repository maps a duplicate-key violation to Conflict; pass
		// that through so the racing loser also gets a 409.
		if appErr, ok := err.(*apperror.AppError); ok {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("creating user: %w", err))
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return principalOf(user), nil
}

// Login authenticates a user by email and password. On success it creates a
// new session in Redis and returns the session token for the cookie.
//
// "No such email" and "wrong password" both surface as the same 401 message
// so the endpoint cannot be used to enumerate accounts.
func (s *authService) Login(ctx context.Context, input LoginInput) (string, *Principal, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if apperror.IsNotFound(err) {
			return "", nil, apperror.NewUnauthorized("invalid email or password")
		}
		return "", nil, apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	// Verify the password against the stored argon2id hash.
	if !verifyPassword(input.Password, user.PasswordHash) {
		return "", nil, apperror.NewUnauthorized("invalid email or password")
	}

	// Create a new session in Redis. Multiple concurrent sessions per user
	// are allowed; each login mints an independent token.
	token, err := s.createSession(ctx, user.ID)
	if err != nil {
		return "", nil, apperror.NewInternal(fmt.Errorf("creating session: %w", err))
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return token, principalOf(user), nil
}

// ValidateSession resolves a session token back into a Principal. Only the
// user id is stored durably in the session; the profile is re-fetched from
// the user record on every validation, so stale or deleted users cannot be
// impersonated by an old token.
func (s *authService) ValidateSession(ctx context.Context, token string) (*Principal, error) {
	key := sessionKeyPrefix + token

	userID, err := s.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, apperror.NewUnauthorized("session expired or invalid")
	}
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("reading session from Redis: %w", err))
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			// The user behind this session no longer exists. Treat as
			// logged out and drop the dangling session.
			_ = s.redis.Del(ctx, key).Err()
			return nil, apperror.NewUnauthorized("session expired or invalid")
		}
		return nil, apperror.NewInternal(fmt.Errorf("resolving session user: %w", err))
	}

	return principalOf(user), nil
}

// DestroySession removes a session from Redis, effectively logging the user out.
func (s *authService) DestroySession(ctx context.Context, token string) error {
	key := sessionKeyPrefix + token

	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return apperror.NewInternal(fmt.Errorf("deleting session from Redis: %w", err))
	}

	return nil
}

// FindIDByEmail resolves an owner email to a user id for the resource
// packages. Returns apperror.NotFound for an unknown email.
func (s *authService) FindIDByEmail(ctx context.Context, email string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// UserExists reports whether a user id resolves to an existing record.
func (s *authService) UserExists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// createSession generates a random session token and stores the user id
// under it with the configured TTL. The user id is the entire durable
// session payload.
func (s *authService) createSession(ctx context.Context, userID string) (string, error) {
	token, err := generateSessionToken()
	if err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}

	key := sessionKeyPrefix + token
	if err := s.redis.Set(ctx, key, userID, s.sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("storing session in Redis: %w", err)
	}

	return token, nil
}

// --- Password Hashing (argon2id) ---

// hashPassword creates an argon2id hash of the given password. The output
// format is: $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
// This format is compatible with most argon2 libraries and allows self-
// contained verification without separate salt storage.
func hashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	// Encode to the standard PHC string format.
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads, b64Salt, b64Hash)

	return encoded, nil
}

// verifyPassword checks a plaintext password against an argon2id hash string.
// Returns true if the password matches.
func verifyPassword(password, encodedHash string) bool {
	// Parse the encoded hash to extract parameters, salt, and hash.
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false
	}

	var memory uint32
	var iterations uint32
	var parallelism uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism)
	if err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	// Compute the hash of the provided password with the same parameters.
	computedHash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expectedHash)))

	// Constant-time comparison to prevent timing attacks.
	return subtle.ConstantTimeCompare(expectedHash, computedHash) == 1
}

// generateSessionToken creates a cryptographically random hex-encoded token.
func generateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
