package domain

import (
	"github.com/allisson/securemessenger/internal/errors"
)

var (
	// ErrRoomNotFound indicates the room does not exist.
	ErrRoomNotFound = errors.Wrap(errors.ErrNotFound, "room not found")

	// ErrRoomNameTaken indicates another room already uses the name.
	ErrRoomNameTaken = errors.Wrap(errors.ErrConflict, "room name already exists")

	// ErrNotRoomMember indicates the user must join the room first.
	ErrNotRoomMember = errors.Wrap(errors.ErrForbidden, "not a member of this room")

	// ErrInvalidRoomName indicates a name shorter than MinRoomNameLength.
	ErrInvalidRoomName = errors.Wrap(errors.ErrInvalidInput, "room name must be at least 3 characters long")

	// ErrEmptyMessage indicates message content was blank after trimming.
	ErrEmptyMessage = errors.Wrap(errors.ErrInvalidInput, "message content is required")
)
