package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/securemessenger/internal/chat/domain"
	cryptoUseCase "github.com/allisson/securemessenger/internal/crypto/usecase"
)

type messageUseCase struct {
	roomRepo    RoomRepository
	messageRepo MessageRepository
	encryption  cryptoUseCase.EncryptionUseCase
	logger      *slog.Logger
}

// NewMessageUseCase creates a new MessageUseCase.
func NewMessageUseCase(
	roomRepo RoomRepository,
	messageRepo MessageRepository,
	encryption cryptoUseCase.EncryptionUseCase,
	logger *slog.Logger,
) MessageUseCase {
	return &messageUseCase{
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
		encryption:  encryption,
		logger:      logger,
	}
}

func (m *messageUseCase) SendMessage(
	ctx context.Context,
	input *domain.SendMessageInput,
) (*domain.MessageView, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, domain.ErrEmptyMessage
	}

	if err := requireMembership(ctx, m.roomRepo, input.RoomID, input.SenderID); err != nil {
		return nil, err
	}

	payload, err := m.encryption.Encrypt(ctx, content)
	if err != nil {
		return nil, err
	}

	message := &domain.Message{
		ID:               uuid.Must(uuid.NewV7()),
		RoomID:           input.RoomID,
		SenderID:         input.SenderID,
		SenderUsername:   input.SenderUsername,
		ContentEncrypted: payload,
		CreatedAt:        time.Now().UTC(),
	}

	if err := m.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	m.logger.InfoContext(ctx, "message sent",
		slog.String("message_id", message.ID.String()),
		slog.String("room_id", message.RoomID.String()),
		slog.String("sender_id", message.SenderID.String()),
	)

	return &domain.MessageView{
		ID:             message.ID,
		RoomID:         message.RoomID,
		SenderID:       message.SenderID,
		SenderUsername: message.SenderUsername,
		Content:        content,
		Decrypted:      true,
		IsOwn:          true,
		CreatedAt:      message.CreatedAt,
	}, nil
}

func (m *messageUseCase) ListRecentMessages(
	ctx context.Context,
	roomID, userID uuid.UUID,
	limit int,
) ([]*domain.MessageView, error) {
	switch {
	case limit <= 0:
		limit = domain.DefaultHistoryLimit
	case limit > domain.MaxHistoryLimit:
		limit = domain.MaxHistoryLimit
	}

	if err := requireMembership(ctx, m.roomRepo, roomID, userID); err != nil {
		return nil, err
	}

	messages, err := m.messageRepo.ListRecent(ctx, roomID, limit)
	if err != nil {
		return nil, err
	}

	views := make([]*domain.MessageView, 0, len(messages))
	for _, message := range messages {
		views = append(views, m.decrypt(ctx, message, userID))
	}
	return views, nil
}

// decrypt never fails: an unreadable message degrades to the placeholder.
func (m *messageUseCase) decrypt(ctx context.Context, message *domain.Message, readerID uuid.UUID) *domain.MessageView {
	view := &domain.MessageView{
		ID:             message.ID,
		RoomID:         message.RoomID,
		SenderID:       message.SenderID,
		SenderUsername: message.SenderUsername,
		IsOwn:          message.SenderID == readerID,
		CreatedAt:      message.CreatedAt,
	}

	content, err := m.encryption.Decrypt(ctx, message.ContentEncrypted)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to decrypt message",
			slog.String("message_id", message.ID.String()),
			slog.String("room_id", message.RoomID.String()),
			slog.Any("error", err),
		)
		view.Content = domain.UndecryptablePlaceholder
		return view
	}

	view.Content = content
	view.Decrypted = true
	return view
}
