// Package service provides session token and password hashing primitives.
package service

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	// Hash returns an encoded Argon2id hash of password.
	Hash(password string) (string, error)

	// Compare reports whether password matches hash. Malformed hashes never match.
	Compare(password, hash string) bool
}

// TokenService generates bearer tokens and their storage hashes.
type TokenService interface {
	// GenerateToken returns a random token for the client and the SHA-256 hex hash to persist.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes a presented token for lookup.
	HashToken(plainToken string) string
}
