package usecase

import (
	"context"
	"log/slog"

	cryptoDomain "github.com/allisson/securemessenger/internal/crypto/domain"
	cryptoService "github.com/allisson/securemessenger/internal/crypto/service"
)

type encryptionUseCase struct {
	masterKey *cryptoDomain.MasterKey
	sealer    cryptoService.MessageSealer
	deriver   cryptoService.RoomKeyDeriver
	logger    *slog.Logger
}

// Encrypt seals plaintext under the master key.
func (e *encryptionUseCase) Encrypt(ctx context.Context, plaintext string) (string, error) {
	payload, err := e.sealer.Seal(plaintext)
	if err != nil {
		e.logger.DebugContext(ctx, "message encryption failed", slog.Any("error", err))
		return "", err
	}
	return payload, nil
}

// Decrypt opens a payload sealed by Encrypt.
func (e *encryptionUseCase) Decrypt(ctx context.Context, payload string) (string, error) {
	plaintext, err := e.sealer.Open(payload)
	if err != nil {
		e.logger.DebugContext(ctx, "message decryption failed", slog.Any("error", err))
		return "", err
	}
	return plaintext, nil
}

// DeriveRoomKey derives the room/user subkey from the master key.
func (e *encryptionUseCase) DeriveRoomKey(
	ctx context.Context,
	roomID, userID string,
) (*cryptoDomain.RoomKey, error) {
	roomKey, err := e.deriver.Derive(e.masterKey.Key, roomID, userID)
	if err != nil {
		e.logger.DebugContext(ctx, "room key derivation failed",
			slog.String("room_id", roomID),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return roomKey, nil
}

// KeySource reports how the master key was acquired.
func (e *encryptionUseCase) KeySource() cryptoDomain.KeySource {
	return e.masterKey.Source
}

// NewEncryptionUseCase creates a new EncryptionUseCase bound to masterKey.
func NewEncryptionUseCase(
	masterKey *cryptoDomain.MasterKey,
	sealer cryptoService.MessageSealer,
	deriver cryptoService.RoomKeyDeriver,
	logger *slog.Logger,
) EncryptionUseCase {
	return &encryptionUseCase{
		masterKey: masterKey,
		sealer:    sealer,
		deriver:   deriver,
		logger:    logger,
	}
}
