// Package usecase exposes message encryption and room key derivation to the rest of
// the application.
package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/securemessenger/internal/crypto/domain"
)

// EncryptionUseCase is the encryption service. It owns the process master key.
//
// Every failure returned by Encrypt, Decrypt and DeriveRoomKey satisfies
// errors.Is(err, cryptoDomain.ErrCrypto).
type EncryptionUseCase interface {
	// Encrypt seals message text into an EncryptedPayload string.
	Encrypt(ctx context.Context, plaintext string) (string, error)

	// Decrypt authenticates and opens an EncryptedPayload string.
	Decrypt(ctx context.Context, payload string) (string, error)

	// DeriveRoomKey deterministically derives the subkey for a room/user pair.
	DeriveRoomKey(ctx context.Context, roomID, userID string) (*cryptoDomain.RoomKey, error)

	// KeySource reports how the active master key was acquired.
	KeySource() cryptoDomain.KeySource
}
