// Package usecase implements rooms, memberships and encrypted messaging.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/securemessenger/internal/chat/domain"
)

// RoomRepository defines room and membership persistence.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	CreateIfAbsent(ctx context.Context, room *domain.Room) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error)
	GetByName(ctx context.Context, name string) (*domain.Room, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Room, error)
	AddMember(ctx context.Context, roomID, userID uuid.UUID, joinedAt time.Time) (bool, error)
	IsMember(ctx context.Context, roomID, userID uuid.UUID) (bool, error)
	ListMembers(ctx context.Context, roomID uuid.UUID) ([]*domain.RoomMember, error)
}

// MessageRepository defines message persistence.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListRecent(ctx context.Context, roomID uuid.UUID, limit int) ([]*domain.Message, error)
}

// RoomUseCase manages rooms and memberships.
type RoomUseCase interface {
	// CreateRoom creates a room and makes the creator its first member.
	CreateRoom(ctx context.Context, input *domain.CreateRoomInput) (*domain.Room, error)

	// JoinRoom joins a room by name. Joining a room twice is not an error.
	JoinRoom(ctx context.Context, name string, userID uuid.UUID) (*domain.JoinRoomOutput, error)

	// JoinDefaultRoom joins the default room, creating it on first use.
	JoinDefaultRoom(ctx context.Context, userID uuid.UUID) error

	ListRooms(ctx context.Context, userID uuid.UUID) ([]*domain.Room, error)

	// ListMembers requires userID to be a member of roomID.
	ListMembers(ctx context.Context, roomID, userID uuid.UUID) ([]*domain.RoomMember, error)
}

// MessageUseCase sends and reads encrypted messages.
type MessageUseCase interface {
	// SendMessage encrypts and stores a message. The sender must be a room member.
	SendMessage(ctx context.Context, input *domain.SendMessageInput) (*domain.MessageView, error)

	// ListRecentMessages returns up to limit of the newest messages, oldest first. Messages
	// that fail to decrypt carry UndecryptablePlaceholder instead of failing the call.
	ListRecentMessages(ctx context.Context, roomID, userID uuid.UUID, limit int) ([]*domain.MessageView, error)
}
