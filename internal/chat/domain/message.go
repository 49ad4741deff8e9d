package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// UndecryptablePlaceholder replaces the content of messages that fail to decrypt.
	UndecryptablePlaceholder = "[Message could not be decrypted]"

	// DefaultHistoryLimit is the number of recent messages returned when no limit is given.
	DefaultHistoryLimit = 50

	// MaxHistoryLimit caps the limit query parameter.
	MaxHistoryLimit = 100
)

// Message is a stored chat message. Content is only ever persisted as an EncryptedPayload.
type Message struct {
	ID               uuid.UUID
	RoomID           uuid.UUID
	SenderID         uuid.UUID
	SenderUsername   string
	ContentEncrypted string
	CreatedAt        time.Time
}

// MessageView is a decrypted message as seen by one reader.
type MessageView struct {
	ID             uuid.UUID
	RoomID         uuid.UUID
	SenderID       uuid.UUID
	SenderUsername string
	Content        string
	Decrypted      bool
	IsOwn          bool
	CreatedAt      time.Time
}

// SendMessageInput contains the data to post a message.
type SendMessageInput struct {
	RoomID         uuid.UUID
	SenderID       uuid.UUID
	SenderUsername string
	Content        string
}
