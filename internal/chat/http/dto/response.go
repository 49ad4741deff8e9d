package dto

import (
	"time"

	"github.com/google/uuid"
)

// RoomResponse represents a room in API responses.
type RoomResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// JoinRoomResponse wraps a joined room.
type JoinRoomResponse struct {
	Room          RoomResponse `json:"room"`
	AlreadyMember bool         `json:"already_member"`
}

// ListRoomsResponse represents the list of rooms the caller belongs to.
type ListRoomsResponse struct {
	Data []RoomResponse `json:"data"`
}

// MemberResponse represents a room member.
type MemberResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	IsOnline bool      `json:"is_online"`
	JoinedAt time.Time `json:"joined_at"`
}

type ListMembersResponse struct {
	Data []MemberResponse `json:"data"`
}

// MessageResponse is a decrypted message. Content holds the placeholder text when
// Decrypted is false.
type MessageResponse struct {
	ID             uuid.UUID `json:"message_id"`
	RoomID         uuid.UUID `json:"room_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	SenderUsername string    `json:"sender"`
	Content        string    `json:"content"`
	Decrypted      bool      `json:"decrypted"`
	IsOwn          bool      `json:"is_own"`
	CreatedAt      time.Time `json:"timestamp"`
}

type ListMessagesResponse struct {
	Data []MessageResponse `json:"data"`
}
