package domain

import (
	"encoding/base64"
	"fmt"
)

// RoomKey is a per-(room, user) subkey derived from the master key.
//
// Derivation is deterministic: the same master key, room and user always produce the
// same key. It is not used to encrypt stored messages.
type RoomKey struct {
	RoomID string
	UserID string
	Key    []byte
}

// RoomKeySalt returns the PBKDF2 salt for a room/user pair: "room_<room>_user_<user>".
func RoomKeySalt(roomID, userID string) []byte {
	return fmt.Appendf(nil, "room_%s_user_%s", roomID, userID)
}

// String returns the text form of the subkey: URL-safe base64 of the 32 raw bytes.
func (k *RoomKey) String() string {
	return base64.URLEncoding.EncodeToString(k.Key)
}
