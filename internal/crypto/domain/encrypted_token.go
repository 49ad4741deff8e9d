package domain

import (
	"encoding/base64"
	"encoding/binary"
	"time"
)

// TokenVersion is the only token layout this build writes and reads.
const TokenVersion byte = 0x01

// tokenHeaderSize is version(1) + algorithm(1) + issued_at(8).
const tokenHeaderSize = 10

// EncryptedToken is the binary form of an EncryptedPayload before text encoding.
//
// Layout:
//
//	version(1) | algorithm(1) | issued_at(8, big-endian unix seconds) | nonce(12) | sealed
//
// sealed is the AEAD output (ciphertext followed by the 16-byte tag). The 10-byte
// header is authenticated as associated data, so the algorithm and timestamp cannot be
// altered without failing decryption.
type EncryptedToken struct {
	Algorithm Algorithm
	IssuedAt  time.Time
	Nonce     []byte
	Sealed    []byte
}

// NewTokenHeader builds the authenticated header for a token about to be sealed.
func NewTokenHeader(alg Algorithm, issuedAt time.Time) ([]byte, error) {
	id, ok := alg.ID()
	if !ok {
		return nil, ErrUnsupportedAlgorithm
	}

	header := make([]byte, tokenHeaderSize)
	header[0] = TokenVersion
	header[1] = id
	binary.BigEndian.PutUint64(header[2:], uint64(issuedAt.Unix()))
	return header, nil
}

// Header returns the associated data the token was sealed with.
func (t *EncryptedToken) Header() []byte {
	header, _ := NewTokenHeader(t.Algorithm, t.IssuedAt)
	return header
}

// Bytes serializes the token.
func (t *EncryptedToken) Bytes() []byte {
	header := t.Header()
	out := make([]byte, 0, len(header)+len(t.Nonce)+len(t.Sealed))
	out = append(out, header...)
	out = append(out, t.Nonce...)
	return append(out, t.Sealed...)
}

// String returns the EncryptedPayload text: URL-safe base64 of Bytes.
func (t *EncryptedToken) String() string {
	return base64.URLEncoding.EncodeToString(t.Bytes())
}

// ParseEncryptedToken decodes an EncryptedPayload string. Every failure is returned as
// a CryptoError for the "decrypt" operation.
func ParseEncryptedToken(payload string) (*EncryptedToken, error) {
	if payload == "" {
		return nil, NewCryptoError("decrypt", CauseInvalidInput, "encrypted message cannot be empty", nil)
	}

	raw, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		return nil, NewCryptoError("decrypt", CauseEncoding, "payload is not valid base64", err)
	}

	if len(raw) < tokenHeaderSize+NonceSize+TagSize {
		return nil, NewCryptoError("decrypt", CauseMalformedToken, "payload is too short", nil)
	}
	if raw[0] != TokenVersion {
		return nil, NewCryptoError("decrypt", CauseMalformedToken, "unknown token version", nil)
	}

	alg, ok := AlgorithmFromID(raw[1])
	if !ok {
		return nil, NewCryptoError("decrypt", CauseMalformedToken, "unknown token algorithm", nil)
	}

	issuedAt := int64(binary.BigEndian.Uint64(raw[2:tokenHeaderSize]))
	body := raw[tokenHeaderSize:]

	return &EncryptedToken{
		Algorithm: alg,
		IssuedAt:  time.Unix(issuedAt, 0).UTC(),
		Nonce:     body[:NonceSize],
		Sealed:    body[NonceSize:],
	}, nil
}
