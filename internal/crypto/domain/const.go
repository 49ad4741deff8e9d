// Package domain defines the message encryption model: the process master key, the
// AEAD algorithms, the EncryptedPayload token format and derived room keys.
package domain

// Algorithm represents the AEAD construction used to seal message payloads.
//
// Both supported algorithms take a 256-bit key, a 96-bit random nonce and append a
// 128-bit authentication tag, so a token produced by either one has the same layout.
type Algorithm string

const (
	// AESGCM is AES-256 in Galois/Counter Mode. Default; fastest on CPUs with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 is ChaCha20-Poly1305, preferred on hosts without AES acceleration.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// KeySize is the length in bytes of the master key and of every derived room key.
	KeySize = 32

	// NonceSize is the nonce length shared by both supported AEAD algorithms.
	NonceSize = 12

	// TagSize is the authentication tag length appended by both AEAD algorithms.
	TagSize = 16

	// RoomKeyIterations is the PBKDF2 work factor for room/user key derivation.
	RoomKeyIterations = 100000
)

// algorithmIDs maps algorithms to the byte stored in the token header.
var algorithmIDs = map[Algorithm]byte{
	AESGCM:   0x01,
	ChaCha20: 0x02,
}

// ID returns the header byte for the algorithm and whether the algorithm is supported.
func (a Algorithm) ID() (byte, bool) {
	id, ok := algorithmIDs[a]
	return id, ok
}

// AlgorithmFromID resolves a token header byte back to its algorithm.
func AlgorithmFromID(id byte) (Algorithm, bool) {
	for alg, algID := range algorithmIDs {
		if algID == id {
			return alg, true
		}
	}
	return "", false
}

// ParseAlgorithm validates an algorithm name coming from configuration or CLI flags.
func ParseAlgorithm(name string) (Algorithm, error) {
	alg := Algorithm(name)
	if _, ok := alg.ID(); !ok {
		return "", ErrUnsupportedAlgorithm
	}
	return alg, nil
}
