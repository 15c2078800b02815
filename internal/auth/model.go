// Package auth handles user accounts, password security, and session
// management for Luminary. It provides registration, login, logout, and
// session validation via opaque tokens stored in Redis.
//
// Every other feature package resolves resource owners through this
// package's user directory, so ownership checks all funnel through here.
package auth

import (
	"time"
)

// User represents a registered Luminary user. This is the domain model used
// throughout the application. Database scanning and JSON marshaling use this
// struct directly.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PasswordHash string    `json:"-"` // Never expose in JSON responses.
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal is the resolved identity of an authenticated caller: the user id
// plus denormalized public profile fields. It deliberately has no field for
// the password hash, so a hash cannot leak through a response payload.
type Principal struct {
	UserID    string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// principalOf builds a Principal from a stored user record.
func principalOf(u *User) *Principal {
	return &Principal{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest holds the data submitted on registration.
type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// LoginRequest holds the data submitted on login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Service Input DTOs (passed from handler to service) ---

// RegisterInput is the validated input for creating a new user.
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// LoginInput is the validated input for authenticating a user.
type LoginInput struct {
	Email    string
	Password string
}
