package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/securemessenger/internal/metrics"
	"github.com/allisson/securemessenger/internal/user/domain"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

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
	m.On("RecordOperation", ctx, "user", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "user", operation, mock.AnythingOfType("time.Duration"), status).Return().Once()
}

func TestUserMetricsDecorator(t *testing.T) {
	ctx := context.Background()

	t.Run("RegisterUser_Success", func(t *testing.T) {
		next := &mockUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		input := RegisterUserInput{Username: "alice", Email: "alice@example.com", Password: "secret"}
		user := &domain.User{ID: uuid.New(), Username: "alice"}

		next.On("RegisterUser", ctx, input).Return(user, nil).Once()
		expectMetrics(mockMetrics, ctx, "user_register", "success")

		got, err := NewUserUseCaseWithMetrics(next, mockMetrics).RegisterUser(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, user, got)
		next.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("RegisterUser_Error", func(t *testing.T) {
		next := &mockUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		input := RegisterUserInput{Username: "alice"}

		next.On("RegisterUser", ctx, input).Return(nil, domain.ErrUsernameTaken).Once()
		expectMetrics(mockMetrics, ctx, "user_register", "error")

		_, err := NewUserUseCaseWithMetrics(next, mockMetrics).RegisterUser(ctx, input)
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("GetUserByID_Error", func(t *testing.T) {
		next := &mockUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		id := uuid.New()
		dbErr := errors.New("connection lost")

		next.On("GetUserByID", ctx, id).Return(nil, dbErr).Once()
		expectMetrics(mockMetrics, ctx, "user_get", "error")

		_, err := NewUserUseCaseWithMetrics(next, mockMetrics).GetUserByID(ctx, id)
		assert.ErrorIs(t, err, dbErr)
		mockMetrics.AssertExpectations(t)
	})
}
