// Package usecase implements user registration and lookup.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/securemessenger/internal/user/domain"
)

// RegisterUserInput contains the input data for user registration.
type RegisterUserInput struct {
	Username string
	Email    string
	Password string
}

// UseCase defines the interface for user business logic operations.
type UseCase interface {
	// RegisterUser creates the account and joins it to the default room.
	RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// UserRepository defines user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// DefaultRoomJoiner adds a newly registered user to the shared default room.
type DefaultRoomJoiner interface {
	JoinDefaultRoom(ctx context.Context, userID uuid.UUID) error
}
