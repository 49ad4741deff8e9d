package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	authService "github.com/allisson/securemessenger/internal/auth/service"
	"github.com/allisson/securemessenger/internal/database"
	"github.com/allisson/securemessenger/internal/user/domain"
)

// UserUseCase handles user-related business logic.
type UserUseCase struct {
	txManager       database.TxManager
	userRepo        UserRepository
	passwordService authService.PasswordService
	roomJoiner      DefaultRoomJoiner
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	passwordService authService.PasswordService,
	roomJoiner DefaultRoomJoiner,
) UseCase {
	return &UserUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		passwordService: passwordService,
		roomJoiner:      roomJoiner,
	}
}

// RegisterUser trims the username and lowercases the email before checking uniqueness.
// The user row and the default room membership are written in one transaction.
func (uc *UserUseCase) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if err := uc.ensureAvailable(ctx, username, email); err != nil {
		return nil, err
	}

	hash, err := uc.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		LastSeen:     now,
		CreatedAt:    now,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return uc.roomJoiner.JoinDefaultRoom(ctx, user.ID)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := uc.userRepo.GetByUsername(ctx, username); err == nil {
		return domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		return domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return nil
}

// GetUserByID retrieves a user by ID.
func (uc *UserUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
