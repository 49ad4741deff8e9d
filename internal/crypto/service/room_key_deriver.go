package service

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/securemessenger/internal/crypto/domain"
)

// PBKDF2RoomKeyDeriver derives room keys with PBKDF2-HMAC-SHA256.
type PBKDF2RoomKeyDeriver struct {
	iterations int
}

// NewRoomKeyDeriver creates a deriver using RoomKeyIterations.
func NewRoomKeyDeriver() *PBKDF2RoomKeyDeriver {
	return &PBKDF2RoomKeyDeriver{iterations: cryptoDomain.RoomKeyIterations}
}

// Derive returns the 32-byte subkey for (roomID, userID), using the master key as the
// PBKDF2 password and "room_<roomID>_user_<userID>" as the salt.
func (d *PBKDF2RoomKeyDeriver) Derive(masterKey []byte, roomID, userID string) (*cryptoDomain.RoomKey, error) {
	if len(masterKey) != cryptoDomain.KeySize {
		return nil, cryptoDomain.NewCryptoError(
			"derive_room_key", cryptoDomain.CauseDerivation, "master key is unavailable", cryptoDomain.ErrInvalidKeySize,
		)
	}
	if roomID == "" || userID == "" {
		return nil, cryptoDomain.NewCryptoError(
			"derive_room_key", cryptoDomain.CauseInvalidInput, "room and user identifiers are required", nil,
		)
	}

	key := pbkdf2.Key(masterKey, cryptoDomain.RoomKeySalt(roomID, userID), d.iterations, cryptoDomain.KeySize, sha256.New)
	return &cryptoDomain.RoomKey{RoomID: roomID, UserID: userID, Key: key}, nil
}
