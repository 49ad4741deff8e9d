package domain

import (
	"fmt"
	"log/slog"

	"github.com/allisson/securemessenger/internal/errors"
)

// Cryptographic operation error definitions.
//
// ErrCrypto is the only error kind callers of the encryption service need to check.
// Every encrypt, decrypt and derive failure satisfies errors.Is(err, ErrCrypto),
// regardless of whether the cause was bad base64, a failed tag check or a wrong key.
var (
	// ErrCrypto indicates an encrypt, decrypt or key derivation failure.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrCrypto = errors.Wrap(errors.ErrInvalidInput, "crypto error")

	// ErrUnsupportedAlgorithm indicates the requested AEAD algorithm is not supported.
	//
	// Supported algorithms: aes-gcm, chacha20-poly1305.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidMasterKey indicates persisted master key material could not be decoded.
	ErrInvalidMasterKey = errors.Wrap(errors.ErrInvalidInput, "invalid master key encoding")
)

// CryptoCause classifies why a cryptographic operation failed. It is meant for logs
// and metrics only and is never part of an API response.
type CryptoCause string

const (
	CauseInvalidInput   CryptoCause = "invalid_input"
	CauseEncoding       CryptoCause = "encoding"
	CauseMalformedToken CryptoCause = "malformed_token"
	CauseAuthentication CryptoCause = "authentication"
	CauseExpired        CryptoCause = "expired"
	CauseCipher         CryptoCause = "cipher"
	CauseDerivation     CryptoCause = "derivation"
)

// CryptoError is the concrete error returned by encrypt, decrypt and derive operations.
// It unwraps to ErrCrypto.
type CryptoError struct {
	// Op is the failed operation, e.g. "encrypt", "decrypt", "derive_room_key".
	Op string
	// Cause is the internal failure classification.
	Cause CryptoCause
	// Message is a human-readable description safe to log.
	Message string
	// Err is the underlying library error, if any.
	Err error
}

// NewCryptoError builds a CryptoError.
func NewCryptoError(op string, cause CryptoCause, message string, err error) *CryptoError {
	return &CryptoError{Op: op, Cause: cause, Message: message, Err: err}
}

// Error implements error.
func (e *CryptoError) Error() string {
	return fmt.Sprintf("failed to %s: %s", e.Op, e.Message)
}

// Unwrap returns ErrCrypto so every CryptoError collapses to one error kind.
func (e *CryptoError) Unwrap() error {
	return ErrCrypto
}

// LogValue renders the error with its internal cause for structured logs.
func (e *CryptoError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("op", e.Op),
		slog.String("cause", string(e.Cause)),
		slog.String("message", e.Message),
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("detail", e.Err.Error()))
	}
	return slog.GroupValue(attrs...)
}
