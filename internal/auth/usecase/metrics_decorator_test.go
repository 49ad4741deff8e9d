package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/securemessenger/internal/auth/domain"
	authUsecaseMocks "github.com/allisson/securemessenger/internal/auth/usecase/mocks"
	"github.com/allisson/securemessenger/internal/metrics"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func expectMetrics(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "auth", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "auth", operation, mock.AnythingOfType("time.Duration"), status).Return().Once()
}

func TestSessionMetricsDecorator(t *testing.T) {
	ctx := context.Background()

	t.Run("Login_Success", func(t *testing.T) {
		mockUseCase := &authUsecaseMocks.MockSessionUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		input := &authDomain.LoginInput{Username: "alice", Password: "pw"}
		output := &authDomain.LoginOutput{PlainToken: "token"}

		mockUseCase.On("Login", ctx, input).Return(output, nil).Once()
		expectMetrics(mockMetrics, ctx, "session_login", "success")

		got, err := NewSessionUseCaseWithMetrics(mockUseCase, mockMetrics).Login(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, output, got)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Authenticate_Error", func(t *testing.T) {
		mockUseCase := &authUsecaseMocks.MockSessionUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("Authenticate", ctx, "hash").Return(nil, authDomain.ErrInvalidCredentials).Once()
		expectMetrics(mockMetrics, ctx, "session_authenticate", "error")

		_, err := NewSessionUseCaseWithMetrics(mockUseCase, mockMetrics).Authenticate(ctx, "hash")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Logout_Error", func(t *testing.T) {
		mockUseCase := &authUsecaseMocks.MockSessionUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		dbErr := errors.New("db down")

		mockUseCase.On("Logout", ctx, "hash").Return(dbErr).Once()
		expectMetrics(mockMetrics, ctx, "session_logout", "error")

		err := NewSessionUseCaseWithMetrics(mockUseCase, mockMetrics).Logout(ctx, "hash")
		assert.ErrorIs(t, err, dbErr)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("CleanupExpired_Success", func(t *testing.T) {
		mockUseCase := &authUsecaseMocks.MockSessionUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("CleanupExpired", ctx, 30, false).Return(int64(5), nil).Once()
		expectMetrics(mockMetrics, ctx, "session_cleanup", "success")

		count, err := NewSessionUseCaseWithMetrics(mockUseCase, mockMetrics).CleanupExpired(ctx, 30, false)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), count)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Implements", func(t *testing.T) {
		decorator := NewSessionUseCaseWithMetrics(&authUsecaseMocks.MockSessionUseCase{}, &mockBusinessMetrics{})
		assert.Implements(t, (*SessionUseCase)(nil), decorator)
	})
}
