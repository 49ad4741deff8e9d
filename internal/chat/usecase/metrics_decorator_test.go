package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/securemessenger/internal/chat/domain"
	chatUsecaseMocks "github.com/allisson/securemessenger/internal/chat/usecase/mocks"
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
	m.On("RecordOperation", ctx, "chat", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "chat", operation, mock.AnythingOfType("time.Duration"), status).Return().Once()
}

func TestRoomMetricsDecorator(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	t.Run("CreateRoom_Success", func(t *testing.T) {
		mockUseCase := &chatUsecaseMocks.MockRoomUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		input := &domain.CreateRoomInput{Name: "golang", CreatorID: userID}
		room := testRoom("golang")

		mockUseCase.On("CreateRoom", ctx, input).Return(room, nil).Once()
		expectMetrics(mockMetrics, ctx, "room_create", "success")

		got, err := NewRoomUseCaseWithMetrics(mockUseCase, mockMetrics).CreateRoom(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, room, got)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("JoinRoom_Error", func(t *testing.T) {
		mockUseCase := &chatUsecaseMocks.MockRoomUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("JoinRoom", ctx, "nope", userID).Return(nil, domain.ErrRoomNotFound).Once()
		expectMetrics(mockMetrics, ctx, "room_join", "error")

		_, err := NewRoomUseCaseWithMetrics(mockUseCase, mockMetrics).JoinRoom(ctx, "nope", userID)
		assert.ErrorIs(t, err, domain.ErrRoomNotFound)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("JoinDefaultRoom_Error", func(t *testing.T) {
		mockUseCase := &chatUsecaseMocks.MockRoomUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		dbErr := errors.New("db down")

		mockUseCase.On("JoinDefaultRoom", ctx, userID).Return(dbErr).Once()
		expectMetrics(mockMetrics, ctx, "room_join_default", "error")

		err := NewRoomUseCaseWithMetrics(mockUseCase, mockMetrics).JoinDefaultRoom(ctx, userID)
		assert.ErrorIs(t, err, dbErr)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("ListMembers_Success", func(t *testing.T) {
		mockUseCase := &chatUsecaseMocks.MockRoomUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		roomID := uuid.Must(uuid.NewV7())

		mockUseCase.On("ListMembers", ctx, roomID, userID).Return([]*domain.RoomMember{}, nil).Once()
		expectMetrics(mockMetrics, ctx, "room_members", "success")

		_, err := NewRoomUseCaseWithMetrics(mockUseCase, mockMetrics).ListMembers(ctx, roomID, userID)
		assert.NoError(t, err)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMessageMetricsDecorator(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("SendMessage_Success", func(t *testing.T) {
		mockUseCase := &chatUsecaseMocks.MockMessageUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		input := &domain.SendMessageInput{RoomID: roomID, SenderID: userID, Content: "hi"}
		view := &domain.MessageView{Content: "hi", Decrypted: true, IsOwn: true}

		mockUseCase.On("SendMessage", ctx, input).Return(view, nil).Once()
		expectMetrics(mockMetrics, ctx, "message_send", "success")

		got, err := NewMessageUseCaseWithMetrics(mockUseCase, mockMetrics).SendMessage(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, view, got)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("ListRecentMessages_Error", func(t *testing.T) {
		mockUseCase := &chatUsecaseMocks.MockMessageUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("ListRecentMessages", ctx, roomID, userID, 10).Return(nil, domain.ErrNotRoomMember).Once()
		expectMetrics(mockMetrics, ctx, "message_list", "error")

		_, err := NewMessageUseCaseWithMetrics(mockUseCase, mockMetrics).ListRecentMessages(ctx, roomID, userID, 10)
		assert.ErrorIs(t, err, domain.ErrNotRoomMember)
		mockMetrics.AssertExpectations(t)
	})
}
