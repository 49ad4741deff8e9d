// Package mocks provides mock implementations of the chat use cases for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/securemessenger/internal/chat/domain"
)

// MockRoomUseCase is a mock implementation of RoomUseCase.
type MockRoomUseCase struct {
	mock.Mock
}

// CreateRoom mocks the CreateRoom method.
func (m *MockRoomUseCase) CreateRoom(ctx context.Context, input *domain.CreateRoomInput) (*domain.Room, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

// JoinRoom mocks the JoinRoom method.
func (m *MockRoomUseCase) JoinRoom(ctx context.Context, name string, userID uuid.UUID) (*domain.JoinRoomOutput, error) {
	args := m.Called(ctx, name, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRoomOutput), args.Error(1)
}

// JoinDefaultRoom mocks the JoinDefaultRoom method.
func (m *MockRoomUseCase) JoinDefaultRoom(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// ListRooms mocks the ListRooms method.
func (m *MockRoomUseCase) ListRooms(ctx context.Context, userID uuid.UUID) ([]*domain.Room, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Room), args.Error(1)
}

// ListMembers mocks the ListMembers method.
func (m *MockRoomUseCase) ListMembers(ctx context.Context, roomID, userID uuid.UUID) ([]*domain.RoomMember, error) {
	args := m.Called(ctx, roomID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RoomMember), args.Error(1)
}

// MockMessageUseCase is a mock implementation of MessageUseCase.
type MockMessageUseCase struct {
	mock.Mock
}

// SendMessage mocks the SendMessage method.
func (m *MockMessageUseCase) SendMessage(
	ctx context.Context,
	input *domain.SendMessageInput,
) (*domain.MessageView, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MessageView), args.Error(1)
}

// ListRecentMessages mocks the ListRecentMessages method.
func (m *MockMessageUseCase) ListRecentMessages(
	ctx context.Context,
	roomID, userID uuid.UUID,
	limit int,
) ([]*domain.MessageView, error) {
	args := m.Called(ctx, roomID, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MessageView), args.Error(1)
}
