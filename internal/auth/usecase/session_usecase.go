package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/securemessenger/internal/auth/domain"
	authService "github.com/allisson/securemessenger/internal/auth/service"
	"github.com/allisson/securemessenger/internal/database"
	userDomain "github.com/allisson/securemessenger/internal/user/domain"
)

type sessionUseCase struct {
	txManager         database.TxManager
	sessionRepo       SessionRepository
	userRepo          UserRepository
	passwordService   authService.PasswordService
	tokenService      authService.TokenService
	sessionExpiration time.Duration
}

// Login verifies the password, persists a new session and flips the user online in one
// transaction. The plain token is only ever returned here.
func (s *sessionUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.passwordService.Compare(input.Password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	plainToken, tokenHash, err := s.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &authDomain.Session{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(s.sessionExpiration),
		CreatedAt: now,
	}

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			return err
		}
		return s.userRepo.SetOnline(ctx, user.ID, true, now)
	})
	if err != nil {
		return nil, err
	}

	return &authDomain.LoginOutput{
		SessionID:  session.ID,
		UserID:     user.ID,
		PlainToken: plainToken,
		ExpiresAt:  session.ExpiresAt,
	}, nil
}

// Logout is idempotent for sessions that are already revoked.
func (s *sessionUseCase) Logout(ctx context.Context, tokenHash string) error {
	session, err := s.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrSessionNotFound) {
			return authDomain.ErrInvalidCredentials
		}
		return err
	}

	now := time.Now().UTC()
	return s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.sessionRepo.Revoke(ctx, session.ID, now); err != nil {
			return err
		}
		return s.userRepo.SetOnline(ctx, session.UserID, false, now)
	})
}

// Authenticate rejects missing, expired and revoked sessions with the same error.
func (s *sessionUseCase) Authenticate(ctx context.Context, tokenHash string) (*userDomain.User, error) {
	session, err := s.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrSessionNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !session.IsActive(time.Now().UTC()) {
		return nil, authDomain.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

func (s *sessionUseCase) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, errors.New("days must be a positive number")
	}

	olderThan := time.Now().UTC().AddDate(0, 0, -days)
	if dryRun {
		return s.sessionRepo.CountExpired(ctx, olderThan)
	}
	return s.sessionRepo.DeleteExpired(ctx, olderThan)
}

// NewSessionUseCase creates a new SessionUseCase with the provided dependencies.
func NewSessionUseCase(
	txManager database.TxManager,
	sessionRepo SessionRepository,
	userRepo UserRepository,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
	sessionExpiration time.Duration,
) SessionUseCase {
	return &sessionUseCase{
		txManager:         txManager,
		sessionRepo:       sessionRepo,
		userRepo:          userRepo,
		passwordService:   passwordService,
		tokenService:      tokenService,
		sessionExpiration: sessionExpiration,
	}
}
