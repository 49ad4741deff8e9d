// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/securemessenger/internal/errors"
)

// User is a registered chat participant.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	IsOnline     bool
	LastSeen     time.Time
	CreatedAt    time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUsernameTaken indicates another user already registered the username.
	ErrUsernameTaken = errors.Wrap(errors.ErrConflict, "username already taken")

	// ErrEmailTaken indicates another user already registered the email.
	ErrEmailTaken = errors.Wrap(errors.ErrConflict, "email already registered")

	// ErrUserAlreadyExists is returned when the database rejects a duplicate user.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")
)
