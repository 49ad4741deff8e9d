package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/securemessenger/internal/chat/domain"
)

type mockRoomRepository struct {
	mock.Mock
}

func (m *mockRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *mockRoomRepository) CreateIfAbsent(ctx context.Context, room *domain.Room) (bool, error) {
	args := m.Called(ctx, room)
	return args.Bool(0), args.Error(1)
}

func (m *mockRoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *mockRoomRepository) GetByName(ctx context.Context, name string) (*domain.Room, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *mockRoomRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Room, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Room), args.Error(1)
}

func (m *mockRoomRepository) AddMember(ctx context.Context, roomID, userID uuid.UUID, joinedAt time.Time) (bool, error) {
	args := m.Called(ctx, roomID, userID, joinedAt)
	return args.Bool(0), args.Error(1)
}

func (m *mockRoomRepository) IsMember(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, roomID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRoomRepository) ListMembers(ctx context.Context, roomID uuid.UUID) ([]*domain.RoomMember, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RoomMember), args.Error(1)
}

// memoryMessageRepository keeps messages in insertion order.
type memoryMessageRepository struct {
	messages []*domain.Message
	err      error
}

func (m *memoryMessageRepository) Create(_ context.Context, message *domain.Message) error {
	if m.err != nil {
		return m.err
	}
	stored := *message
	m.messages = append(m.messages, &stored)
	return nil
}

func (m *memoryMessageRepository) ListRecent(_ context.Context, roomID uuid.UUID, limit int) ([]*domain.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	var inRoom []*domain.Message
	for _, message := range m.messages {
		if message.RoomID == roomID {
			inRoom = append(inRoom, message)
		}
	}
	if len(inRoom) > limit {
		inRoom = inRoom[len(inRoom)-limit:]
	}
	return inRoom, nil
}

type inlineTxManager struct {
	calls int
}

func (i *inlineTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	i.calls++
	return fn(ctx)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRoom(name string) *domain.Room {
	return &domain.Room{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		CreatedBy: uuid.Must(uuid.NewV7()),
		CreatedAt: time.Now().UTC(),
	}
}

func newBufferLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
