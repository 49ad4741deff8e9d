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

// PostgreSQLMessageRepository handles message persistence for PostgreSQL.
type PostgreSQLMessageRepository struct {
	db *sql.DB
}

// NewPostgreSQLMessageRepository creates a new PostgreSQLMessageRepository.
func NewPostgreSQLMessageRepository(db *sql.DB) *PostgreSQLMessageRepository {
	return &PostgreSQLMessageRepository{db: db}
}

// Create inserts a message. ContentEncrypted must already be an EncryptedPayload.
func (p *PostgreSQLMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO messages (id, room_id, sender_id, content_encrypted, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		message.ID,
		message.RoomID,
		message.SenderID,
		message.ContentEncrypted,
		message.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create message")
	}
	return nil
}

// ListRecent returns the newest limit messages of roomID, oldest first.
func (p *PostgreSQLMessageRepository) ListRecent(
	ctx context.Context,
	roomID uuid.UUID,
	limit int,
) ([]*domain.Message, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT m.id, m.room_id, m.sender_id, u.username, m.content_encrypted, m.created_at
			  FROM messages m
			  JOIN users u ON u.id = m.sender_id
			  WHERE m.room_id = $1
			  ORDER BY m.created_at DESC, m.id DESC
			  LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, roomID, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list messages")
	}
	defer func() {
		_ = rows.Close()
	}()

	messages := make([]*domain.Message, 0, limit)
	for rows.Next() {
		var message domain.Message
		if err := rows.Scan(
			&message.ID,
			&message.RoomID,
			&message.SenderID,
			&message.SenderUsername,
			&message.ContentEncrypted,
			&message.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan message")
		}
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate messages")
	}

	slices.Reverse(messages)
	return messages, nil
}
