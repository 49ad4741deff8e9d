package repository

import (
	"context"
	"database/sql"
	"slices"

	"github.com/google/uuid"

	"github.com/allisson/securemessenger/internal/chat/domain"
	"github.com/allisson/securemessenger/internal/database"
	apperrors "github.com/allisson/securemessenger/internal/errors"
)

// MySQLMessageRepository handles message persistence for MySQL. IDs are stored as BINARY(16).
type MySQLMessageRepository struct {
	db *sql.DB
}

// NewMySQLMessageRepository creates a new MySQLMessageRepository.
func NewMySQLMessageRepository(db *sql.DB) *MySQLMessageRepository {
	return &MySQLMessageRepository{db: db}
}

// Create inserts a message. ContentEncrypted must already be an EncryptedPayload.
func (m *MySQLMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	querier := database.GetTx(ctx, m.db)

	id, err := message.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal message id")
	}
	roomID, err := message.RoomID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal room id")
	}
	senderID, err := message.SenderID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal sender id")
	}

	query := `INSERT INTO messages (id, room_id, sender_id, content_encrypted, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, roomID, senderID, message.ContentEncrypted, message.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create message")
	}
	return nil
}

// ListRecent returns the newest limit messages of roomID, oldest first.
func (m *MySQLMessageRepository) ListRecent(
	ctx context.Context,
	roomID uuid.UUID,
	limit int,
) ([]*domain.Message, error) {
	querier := database.GetTx(ctx, m.db)

	roomIDBytes, err := roomID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal room id")
	}

	query := `SELECT m.id, m.room_id, m.sender_id, u.username, m.content_encrypted, m.created_at
			  FROM messages m
			  JOIN users u ON u.id = m.sender_id
			  WHERE m.room_id = ?
			  ORDER BY m.created_at DESC, m.id DESC
			  LIMIT ?`

	rows, err := querier.QueryContext(ctx, query, roomIDBytes, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list messages")
	}
	defer func() {
		_ = rows.Close()
	}()

	messages := make([]*domain.Message, 0, limit)
	for rows.Next() {
		var message domain.Message
		var id, msgRoomID, senderID []byte
		if err := rows.Scan(
			&id,
			&msgRoomID,
			&senderID,
			&message.SenderUsername,
			&message.ContentEncrypted,
			&message.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan message")
		}
		if err := message.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal message id")
		}
		if err := message.RoomID.UnmarshalBinary(msgRoomID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal room id")
		}
		if err := message.SenderID.UnmarshalBinary(senderID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal sender id")
		}
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate messages")
	}

	slices.Reverse(messages)
	return messages, nil
}
