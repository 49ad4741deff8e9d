// Package domain defines login sessions and authentication errors.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is an issued bearer token. Only the SHA-256 hash of the token is stored.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IsActive reports whether the session can still authenticate requests at now.
func (s *Session) IsActive(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// LoginInput holds the credentials submitted to open a session.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput is returned once per login; the plain token is never retrievable again.
type LoginOutput struct {
	SessionID  uuid.UUID
	UserID     uuid.UUID
	PlainToken string
	ExpiresAt  time.Time
}
