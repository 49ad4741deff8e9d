package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/securemessenger/internal/chat/domain"
	"github.com/allisson/securemessenger/internal/metrics"
)

func recordChat(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	metrics.Observe(ctx, m, "chat", operation, start, err)
}

// roomUseCaseWithMetrics decorates RoomUseCase with metrics instrumentation.
type roomUseCaseWithMetrics struct {
	next    RoomUseCase
	metrics metrics.BusinessMetrics
}

// NewRoomUseCaseWithMetrics wraps a RoomUseCase with metrics recording.
func NewRoomUseCaseWithMetrics(useCase RoomUseCase, m metrics.BusinessMetrics) RoomUseCase {
	return &roomUseCaseWithMetrics{next: useCase, metrics: m}
}

func (r *roomUseCaseWithMetrics) CreateRoom(ctx context.Context, input *domain.CreateRoomInput) (*domain.Room, error) {
	start := time.Now()
	room, err := r.next.CreateRoom(ctx, input)
	recordChat(ctx, r.metrics, "room_create", start, err)
	return room, err
}

func (r *roomUseCaseWithMetrics) JoinRoom(
	ctx context.Context,
	name string,
	userID uuid.UUID,
) (*domain.JoinRoomOutput, error) {
	start := time.Now()
	output, err := r.next.JoinRoom(ctx, name, userID)
	recordChat(ctx, r.metrics, "room_join", start, err)
	return output, err
}

func (r *roomUseCaseWithMetrics) JoinDefaultRoom(ctx context.Context, userID uuid.UUID) error {
	start := time.Now()
	err := r.next.JoinDefaultRoom(ctx, userID)
	recordChat(ctx, r.metrics, "room_join_default", start, err)
	return err
}

func (r *roomUseCaseWithMetrics) ListRooms(ctx context.Context, userID uuid.UUID) ([]*domain.Room, error) {
	start := time.Now()
	rooms, err := r.next.ListRooms(ctx, userID)
	recordChat(ctx, r.metrics, "room_list", start, err)
	return rooms, err
}

func (r *roomUseCaseWithMetrics) ListMembers(
	ctx context.Context,
	roomID, userID uuid.UUID,
) ([]*domain.RoomMember, error) {
	start := time.Now()
	members, err := r.next.ListMembers(ctx, roomID, userID)
	recordChat(ctx, r.metrics, "room_members", start, err)
	return members, err
}

// messageUseCaseWithMetrics decorates MessageUseCase with metrics instrumentation.
type messageUseCaseWithMetrics struct {
	next    MessageUseCase
	metrics metrics.BusinessMetrics
}

// NewMessageUseCaseWithMetrics wraps a MessageUseCase with metrics recording.
func NewMessageUseCaseWithMetrics(useCase MessageUseCase, m metrics.BusinessMetrics) MessageUseCase {
	return &messageUseCaseWithMetrics{next: useCase, metrics: m}
}

func (m *messageUseCaseWithMetrics) SendMessage(
	ctx context.Context,
	input *domain.SendMessageInput,
) (*domain.MessageView, error) {
	start := time.Now()
	view, err := m.next.SendMessage(ctx, input)
	recordChat(ctx, m.metrics, "message_send", start, err)
	return view, err
}

func (m *messageUseCaseWithMetrics) ListRecentMessages(
	ctx context.Context,
	roomID, userID uuid.UUID,
	limit int,
) ([]*domain.MessageView, error) {
	start := time.Now()
	views, err := m.next.ListRecentMessages(ctx, roomID, userID, limit)
	recordChat(ctx, m.metrics, "message_list", start, err)
	return views, err
}
