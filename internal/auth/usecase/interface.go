// Package usecase implements session login, logout and bearer token authentication.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/securemessenger/internal/auth/domain"
	userDomain "github.com/allisson/securemessenger/internal/user/domain"
)

// SessionRepository defines the interface for session persistence.
type SessionRepository interface {
	Create(ctx context.Context, session *authDomain.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Session, error)
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) error
	CountExpired(ctx context.Context, olderThan time.Time) (int64, error)
	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

// UserRepository is the subset of user persistence sessions depend on.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
	SetOnline(ctx context.Context, id uuid.UUID, online bool, at time.Time) error
}

// SessionUseCase manages user sessions.
type SessionUseCase interface {
	// Login verifies credentials, opens a session and marks the user online.
	// Unknown usernames and wrong passwords both return ErrInvalidCredentials.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.LoginOutput, error)

	// Logout revokes the session behind tokenHash and marks its user offline.
	Logout(ctx context.Context, tokenHash string) error

	// Authenticate resolves a token hash to the user owning an active session.
	Authenticate(ctx context.Context, tokenHash string) (*userDomain.User, error)

	// CleanupExpired deletes sessions expired for more than days. With dryRun it only counts them.
	CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error)
}
