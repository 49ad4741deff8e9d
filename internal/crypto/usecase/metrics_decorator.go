package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/securemessenger/internal/crypto/domain"
	"github.com/allisson/securemessenger/internal/metrics"
)

// encryptionUseCaseWithMetrics decorates EncryptionUseCase with metrics instrumentation.
type encryptionUseCaseWithMetrics struct {
	next    EncryptionUseCase
	metrics metrics.BusinessMetrics
}

// NewEncryptionUseCaseWithMetrics wraps an EncryptionUseCase with metrics recording.
func NewEncryptionUseCaseWithMetrics(useCase EncryptionUseCase, m metrics.BusinessMetrics) EncryptionUseCase {
	return &encryptionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (e *encryptionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, e.metrics, "crypto", operation, start, err)
}

// Encrypt records metrics for message encryption.
func (e *encryptionUseCaseWithMetrics) Encrypt(ctx context.Context, plaintext string) (string, error) {
	start := time.Now()
	payload, err := e.next.Encrypt(ctx, plaintext)
	e.record(ctx, "message_encrypt", start, err)
	return payload, err
}

// Decrypt records metrics for message decryption.
func (e *encryptionUseCaseWithMetrics) Decrypt(ctx context.Context, payload string) (string, error) {
	start := time.Now()
	plaintext, err := e.next.Decrypt(ctx, payload)
	e.record(ctx, "message_decrypt", start, err)
	return plaintext, err
}

// DeriveRoomKey records metrics for room key derivation.
func (e *encryptionUseCaseWithMetrics) DeriveRoomKey(
	ctx context.Context,
	roomID, userID string,
) (*cryptoDomain.RoomKey, error) {
	start := time.Now()
	roomKey, err := e.next.DeriveRoomKey(ctx, roomID, userID)
	e.record(ctx, "room_key_derive", start, err)
	return roomKey, err
}

// KeySource delegates without recording.
func (e *encryptionUseCaseWithMetrics) KeySource() cryptoDomain.KeySource {
	return e.next.KeySource()
}
