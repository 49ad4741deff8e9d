// Package service provides the cryptographic primitives behind message encryption:
// AEAD ciphers, master key acquisition, message token sealing and room key derivation.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/securemessenger/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt seals plaintext bound to aad and returns the sealed bytes and the random nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt opens ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyLoader acquires the process master key. Load never fails: when no durable key
// source is usable it returns an ephemeral key tagged KeySourceEphemeral.
type KeyLoader interface {
	Load(ctx context.Context) *cryptoDomain.MasterKey
}

// MessageSealer turns message text into an EncryptedPayload string and back.
type MessageSealer interface {
	Seal(plaintext string) (string, error)
	Open(payload string) (string, error)
}

// RoomKeyDeriver derives per-(room, user) subkeys from a master key.
type RoomKeyDeriver interface {
	Derive(masterKey []byte, roomID, userID string) (*cryptoDomain.RoomKey, error)
}
