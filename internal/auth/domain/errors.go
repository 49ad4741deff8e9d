package domain

import (
	"github.com/allisson/securemessenger/internal/errors"
)

var (
	// ErrSessionNotFound indicates no session matches the token hash.
	ErrSessionNotFound = errors.Wrap(errors.ErrNotFound, "session not found")

	// ErrInvalidCredentials covers unknown users, wrong passwords and dead sessions alike.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")
)
