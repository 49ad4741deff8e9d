package service

import (
	"time"
	"unicode/utf8"

	cryptoDomain "github.com/allisson/securemessenger/internal/crypto/domain"
)

// maxClockSkew bounds how far in the future a token timestamp may be when a TTL is set.
const maxClockSkew = 60 * time.Second

// MessageCipher seals message text into EncryptedPayload strings under the master key.
//
// New payloads use the configured algorithm. Payloads sealed with any supported
// algorithm can be opened, so changing the algorithm does not orphan stored messages.
type MessageCipher struct {
	algorithm cryptoDomain.Algorithm
	ciphers   map[cryptoDomain.Algorithm]AEAD
	ttl       time.Duration
	now       func() time.Time
}

// NewMessageCipher creates a MessageCipher. A ttl of zero disables expiry.
func NewMessageCipher(
	masterKey *cryptoDomain.MasterKey,
	algorithm cryptoDomain.Algorithm,
	aeadManager AEADManager,
	ttl time.Duration,
) (*MessageCipher, error) {
	if _, ok := algorithm.ID(); !ok {
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}

	ciphers := make(map[cryptoDomain.Algorithm]AEAD, 2)
	for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		aead, err := aeadManager.CreateCipher(masterKey.Key, alg)
		if err != nil {
			return nil, err
		}
		ciphers[alg] = aead
	}

	return &MessageCipher{
		algorithm: algorithm,
		ciphers:   ciphers,
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

// Seal encrypts plaintext. Each call uses a fresh nonce, so sealing the same text twice
// yields different payloads.
func (c *MessageCipher) Seal(plaintext string) (string, error) {
	if !utf8.ValidString(plaintext) {
		return "", cryptoDomain.NewCryptoError(
			"encrypt", cryptoDomain.CauseInvalidInput, "message must be valid UTF-8", nil,
		)
	}

	issuedAt := c.now().UTC().Truncate(time.Second)
	header, err := cryptoDomain.NewTokenHeader(c.algorithm, issuedAt)
	if err != nil {
		return "", cryptoDomain.NewCryptoError("encrypt", cryptoDomain.CauseCipher, "invalid algorithm", err)
	}

	sealed, nonce, err := c.ciphers[c.algorithm].Encrypt([]byte(plaintext), header)
	if err != nil {
		return "", cryptoDomain.NewCryptoError("encrypt", cryptoDomain.CauseCipher, "cipher failure", err)
	}

	token := &cryptoDomain.EncryptedToken{
		Algorithm: c.algorithm,
		IssuedAt:  issuedAt,
		Nonce:     nonce,
		Sealed:    sealed,
	}
	return token.String(), nil
}

// Open authenticates and decrypts a payload produced by Seal.
func (c *MessageCipher) Open(payload string) (string, error) {
	token, err := cryptoDomain.ParseEncryptedToken(payload)
	if err != nil {
		return "", err
	}

	plaintext, err := c.ciphers[token.Algorithm].Decrypt(token.Sealed, token.Nonce, token.Header())
	if err != nil {
		return "", cryptoDomain.NewCryptoError(
			"decrypt", cryptoDomain.CauseAuthentication, "authentication failed", err,
		)
	}

	if c.ttl > 0 {
		age := c.now().Sub(token.IssuedAt)
		if age > c.ttl {
			return "", cryptoDomain.NewCryptoError("decrypt", cryptoDomain.CauseExpired, "message expired", nil)
		}
		if age < -maxClockSkew {
			return "", cryptoDomain.NewCryptoError(
				"decrypt", cryptoDomain.CauseMalformedToken, "message timestamp is in the future", nil,
			)
		}
	}

	if !utf8.Valid(plaintext) {
		return "", cryptoDomain.NewCryptoError(
			"decrypt", cryptoDomain.CauseMalformedToken, "decrypted message is not valid UTF-8", nil,
		)
	}
	return string(plaintext), nil
}
