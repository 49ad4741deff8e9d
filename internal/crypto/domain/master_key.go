package domain

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// KeySource records which acquisition path produced the process master key.
type KeySource string

const (
	// KeySourceFile means the key was read from an existing key file.
	KeySourceFile KeySource = "file"
	// KeySourceGenerated means the key was generated and persisted to the key file on this run.
	KeySourceGenerated KeySource = "generated"
	// KeySourceEnv means the key file was unusable and the key was derived from the
	// passphrase environment variable.
	KeySourceEnv KeySource = "env"
	// KeySourceEphemeral means neither the key file nor the passphrase were usable.
	// Messages encrypted under this key are lost when the process exits.
	KeySourceEphemeral KeySource = "ephemeral"
)

// Persistent reports whether the key can be recovered by a later process run.
func (s KeySource) Persistent() bool {
	return s != KeySourceEphemeral
}

// MasterKey is the single symmetric secret every message payload is sealed with.
//
// Exactly one MasterKey is active per process. It is owned by the encryption service
// and never leaves it except through derived room keys.
type MasterKey struct {
	Key    []byte
	Source KeySource
}

// GenerateMasterKey creates a random 32-byte master key tagged with source.
func GenerateMasterKey(source KeySource) *MasterKey {
	key := make([]byte, KeySize)
	// rand.Read crashes the program rather than returning an error.
	_, _ = rand.Read(key)
	return &MasterKey{Key: key, Source: source}
}

// ParseMasterKey decodes key file content (URL-safe base64 of 32 raw bytes).
// Surrounding whitespace is ignored so hand-edited files with a trailing newline load.
func ParseMasterKey(encoded []byte, source KeySource) (*MasterKey, error) {
	trimmed := bytes.TrimSpace(encoded)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: key file is empty", ErrInvalidMasterKey)
	}

	key := make([]byte, base64.URLEncoding.DecodedLen(len(trimmed)))
	n, err := base64.URLEncoding.Decode(key, trimmed)
	if err != nil {
		Zero(key)
		return nil, fmt.Errorf("%w: %v", ErrInvalidMasterKey, err)
	}
	if n != KeySize {
		Zero(key)
		return nil, fmt.Errorf("%w: master key must be %d bytes, got %d", ErrInvalidKeySize, KeySize, n)
	}

	return &MasterKey{Key: key[:n], Source: source}, nil
}

// MasterKeyFromPassphrase deterministically turns a passphrase into a master key:
// the first 32 bytes of its UTF-8 encoding, right-padded with zero bytes.
func MasterKeyFromPassphrase(passphrase string) *MasterKey {
	key := make([]byte, KeySize)
	copy(key, passphrase)
	return &MasterKey{Key: key, Source: KeySourceEnv}
}

// Encode returns the key file representation: URL-safe base64, no trailing newline.
func (m *MasterKey) Encode() string {
	return base64.URLEncoding.EncodeToString(m.Key)
}

// Close zeroes the key material.
func (m *MasterKey) Close() {
	Zero(m.Key)
}
