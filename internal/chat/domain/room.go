// Package domain defines chat rooms, memberships and encrypted messages.
package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultRoomName is the room every new user joins on registration.
	DefaultRoomName = "General"

	// DefaultRoomDescription describes the default room when it is first created.
	DefaultRoomDescription = "General chat room"

	// MinRoomNameLength is counted in characters after trimming.
	MinRoomNameLength = 3

	// MaxRoomNameLength matches the rooms.name column width.
	MaxRoomNameLength = 100
)

// Room is a named conversation users can join.
type Room struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
}

// RoomMember is a membership row joined with the member's public profile.
type RoomMember struct {
	RoomID   uuid.UUID
	UserID   uuid.UUID
	Username string
	IsOnline bool
	JoinedAt time.Time
}

// CreateRoomInput contains the data to create a room.
type CreateRoomInput struct {
	Name        string
	Description string
	CreatorID   uuid.UUID
}

// JoinRoomOutput reports the joined room and whether the caller already belonged to it.
type JoinRoomOutput struct {
	Room          *Room
	AlreadyMember bool
}
