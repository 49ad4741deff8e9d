package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/securemessenger/internal/auth/domain"
	userDomain "github.com/allisson/securemessenger/internal/user/domain"
)

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Create(ctx context.Context, session *authDomain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}

func (m *mockSessionRepository) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockSessionRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockUserRepository) SetOnline(ctx context.Context, id uuid.UUID, online bool, at time.Time) error {
	args := m.Called(ctx, id, online, at)
	return args.Error(0)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Compare(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken() (plainToken string, tokenHash string, err error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) HashToken(plainToken string) string {
	args := m.Called(plainToken)
	return args.String(0)
}

// inlineTxManager runs fn directly and records whether it was used.
type inlineTxManager struct {
	calls int
}

func (i *inlineTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	i.calls++
	return fn(ctx)
}

type sessionUseCaseFixture struct {
	txManager       *inlineTxManager
	sessionRepo     *mockSessionRepository
	userRepo        *mockUserRepository
	passwordService *mockPasswordService
	tokenService    *mockTokenService
	useCase         SessionUseCase
}

func newSessionUseCaseFixture() *sessionUseCaseFixture {
	f := &sessionUseCaseFixture{
		txManager:       &inlineTxManager{},
		sessionRepo:     &mockSessionRepository{},
		userRepo:        &mockUserRepository{},
		passwordService: &mockPasswordService{},
		tokenService:    &mockTokenService{},
	}
	f.useCase = NewSessionUseCase(
		f.txManager,
		f.sessionRepo,
		f.userRepo,
		f.passwordService,
		f.tokenService,
		24*time.Hour,
	)
	return f
}

func (f *sessionUseCaseFixture) assertExpectations(t *testing.T) {
	f.sessionRepo.AssertExpectations(t)
	f.userRepo.AssertExpectations(t)
	f.passwordService.AssertExpectations(t)
	f.tokenService.AssertExpectations(t)
}

func testUser() *userDomain.User {
	return &userDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$hash",
	}
}

func TestSessionUseCase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_OpensSessionAndMarksOnline", func(t *testing.T) {
		f := newSessionUseCaseFixture()
		user := testUser()

		f.userRepo.On("GetByUsername", ctx, "alice").Return(user, nil).Once()
		f.passwordService.On("Compare", "s3cret-pass", user.PasswordHash).Return(true).Once()
		f.tokenService.On("GenerateToken").Return("plain-token", "token-hash", nil).Once()
		f.sessionRepo.On("Create", ctx, mock.MatchedBy(func(s *authDomain.Session) bool {
			return s.UserID == user.ID && s.TokenHash == "token-hash" && s.RevokedAt == nil &&
				s.ExpiresAt.Sub(s.CreatedAt) == 24*time.Hour
		})).Return(nil).Once()
		f.userRepo.On("SetOnline", ctx, user.ID, true, mock.AnythingOfType("time.Time")).Return(nil).Once()

		output, err := f.useCase.Login(ctx, &authDomain.LoginInput{Username: " alice ", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.Equal(t, "plain-token", output.PlainToken)
		assert.Equal(t, user.ID, output.UserID)
		assert.Equal(t, 1, f.txManager.calls)
		f.assertExpectations(t)
	})

	t.Run("Error_UnknownUser", func(t *testing.T) {
		f := newSessionUseCaseFixture()
		f.userRepo.On("GetByUsername", ctx, "ghost").Return(nil, userDomain.ErrUserNotFound).Once()

		_, err := f.useCase.Login(ctx, &authDomain.LoginInput{Username: "ghost", Password: "whatever"})
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		f.assertExpectations(t)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		f := newSessionUseCaseFixture()
		user := testUser()
		f.userRepo.On("GetByUsername", ctx, "alice").Return(user, nil).Once()
		f.passwordService.On("Compare", "wrong", user.PasswordHash).Return(false).Once()

		_, err := f.useCase.Login(ctx, &authDomain.LoginInput{Username: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.Equal(t, 0, f.txManager.calls)
		f.assertExpectations(t)
	})

	t.Run("Error_SessionCreateFails", func(t *testing.T) {
		f := newSessionUseCaseFixture()
		user := testUser()
		dbErr := errors.New("db down")

		f.userRepo.On("GetByUsername", ctx, "alice").Return(user, nil).Once()
		f.passwordService.On("Compare", "pw", user.PasswordHash).Return(true).Once()
		f.tokenService.On("GenerateToken").Return("plain", "hash", nil).Once()
		f.sessionRepo.On("Create", ctx, mock.Anything).Return(dbErr).Once()

		_, err := f.useCase.Login(ctx, &authDomain.LoginInput{Username: "alice", Password: "pw"})
		assert.ErrorIs(t, err, dbErr)
		f.assertExpectations(t)
	})
}

func TestSessionUseCase_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RevokesAndMarksOffline", func(t *testing.T) {
		f := newSessionUseCaseFixture()
		session := &authDomain.Session{ID: uuid.Must(uuid.NewV7()), UserID: uuid.Must(uuid.NewV7())}

		f.sessionRepo.On("GetByTokenHash", ctx, "hash").Return(session, nil).Once()
		f.sessionRepo.On("Revoke", ctx, session.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()
		f.userRepo.On("SetOnline", ctx, session.UserID, false, mock.AnythingOfType("time.Time")).Return(nil).Once()

		assert.NoError(t, f.useCase.Logout(ctx, "hash"))
		f.assertExpectations(t)
	})

	t.Run("Error_UnknownSession", func(t *testing.T) {
		f := newSessionUseCaseFixture()
		f.sessionRepo.On("GetByTokenHash", ctx, "hash").Return(nil, authDomain.ErrSessionNotFound).Once()

		assert.ErrorIs(t, f.useCase.Logout(ctx, "hash"), authDomain.ErrInvalidCredentials)
		f.assertExpectations(t)
	})
}

func TestSessionUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Success_ActiveSession", func(t *testing.T) {
		f := newSessionUseCaseFixture()
		user := testUser()
		session := &authDomain.Session{UserID: user.ID, ExpiresAt: now.Add(time.Hour)}

		f.sessionRepo.On("GetByTokenHash", ctx, "hash").Return(session, nil).Once()
		f.userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()

		got, err := f.useCase.Authenticate(ctx, "hash")
		require.NoError(t, err)
		assert.Equal(t, user, got)
		f.assertExpectations(t)
	})

	revokedAt := now.Add(-time.Minute)
	rejected := []struct {
		name    string
		session *authDomain.Session
		err     error
	}{
		{"Error_NotFound", nil, authDomain.ErrSessionNotFound},
		{"Error_Expired", &authDomain.Session{ExpiresAt: now.Add(-time.Minute)}, nil},
		{"Error_Revoked", &authDomain.Session{ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt}, nil},
	}

	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionUseCaseFixture()
			if tt.session == nil {
				f.sessionRepo.On("GetByTokenHash", ctx, "hash").Return(nil, tt.err).Once()
			} else {
				f.sessionRepo.On("GetByTokenHash", ctx, "hash").Return(tt.session, nil).Once()
			}

			_, err := f.useCase.Authenticate(ctx, "hash")
			assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
			f.assertExpectations(t)
		})
	}

	t.Run("Error_UserDeleted", func(t *testing.T) {
		f := newSessionUseCaseFixture()
		session := &authDomain.Session{UserID: uuid.Must(uuid.NewV7()), ExpiresAt: now.Add(time.Hour)}

		f.sessionRepo.On("GetByTokenHash", ctx, "hash").Return(session, nil).Once()
		f.userRepo.On("GetByID", ctx, session.UserID).Return(nil, userDomain.ErrUserNotFound).Once()

		_, err := f.useCase.Authenticate(ctx, "hash")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		f.assertExpectations(t)
	})
}

func TestSessionUseCase_CleanupExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("DryRun_Counts", func(t *testing.T) {
		f := newSessionUseCaseFixture()
		f.sessionRepo.On("CountExpired", ctx, mock.AnythingOfType("time.Time")).Return(int64(4), nil).Once()

		count, err := f.useCase.CleanupExpired(ctx, 7, true)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
		f.assertExpectations(t)
	})

	t.Run("Delete", func(t *testing.T) {
		f := newSessionUseCaseFixture()
		f.sessionRepo.On("DeleteExpired", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
			return time.Since(cutoff) >= 7*24*time.Hour
		})).Return(int64(2), nil).Once()

		count, err := f.useCase.CleanupExpired(ctx, 7, false)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		f.assertExpectations(t)
	})

	t.Run("Error_NegativeDays", func(t *testing.T) {
		f := newSessionUseCaseFixture()
		_, err := f.useCase.CleanupExpired(ctx, -1, false)
		assert.Error(t, err)
	})
}
