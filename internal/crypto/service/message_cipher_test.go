package service

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/securemessenger/internal/crypto/domain"
)

func newTestMessageCipher(t *testing.T, key *cryptoDomain.MasterKey, alg cryptoDomain.Algorithm, ttl time.Duration) *MessageCipher {
	t.Helper()
	c, err := NewMessageCipher(key, alg, NewAEADManager(), ttl)
	require.NoError(t, err)
	return c
}

func requireCryptoCause(t *testing.T, err error, cause cryptoDomain.CryptoCause) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, cryptoDomain.ErrCrypto)

	var cryptoErr *cryptoDomain.CryptoError
	require.ErrorAs(t, err, &cryptoErr)
	assert.Equal(t, cause, cryptoErr.Cause)
}

func TestMessageCipher_RoundTrip(t *testing.T) {
	key := cryptoDomain.GenerateMasterKey(cryptoDomain.KeySourceGenerated)

	messages := []string{
		"Hello, room!",
		"",
		"héllo 👋 世界",
		strings.Repeat("x", 1<<20),
	}

	for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		c := newTestMessageCipher(t, key, alg, 0)
		for _, msg := range messages {
			payload, err := c.Seal(msg)
			require.NoError(t, err)
			assert.NotEmpty(t, payload)

			_, err = base64.URLEncoding.DecodeString(payload)
			require.NoError(t, err, "payload must be URL-safe base64")

			opened, err := c.Open(payload)
			require.NoError(t, err)
			assert.Equal(t, msg, opened)
		}
	}
}

func TestMessageCipher_Seal(t *testing.T) {
	c := newTestMessageCipher(t, cryptoDomain.GenerateMasterKey(cryptoDomain.KeySourceGenerated), cryptoDomain.AESGCM, 0)

	t.Run("same plaintext yields different payloads", func(t *testing.T) {
		first, err := c.Seal("Hello, room!")
		require.NoError(t, err)
		second, err := c.Seal("Hello, room!")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.NotContains(t, first, "Hello")
	})

	t.Run("invalid UTF-8 is rejected", func(t *testing.T) {
		_, err := c.Seal(string([]byte{0xff, 0xfe}))
		requireCryptoCause(t, err, cryptoDomain.CauseInvalidInput)
	})
}

func TestMessageCipher_Open(t *testing.T) {
	key := cryptoDomain.GenerateMasterKey(cryptoDomain.KeySourceGenerated)
	c := newTestMessageCipher(t, key, cryptoDomain.AESGCM, 0)

	payload, err := c.Seal("Hello, room!")
	require.NoError(t, err)

	t.Run("empty payload", func(t *testing.T) {
		_, err := c.Open("")
		requireCryptoCause(t, err, cryptoDomain.CauseInvalidInput)
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := c.Open("this is not a token")
		requireCryptoCause(t, err, cryptoDomain.CauseEncoding)
	})

	t.Run("tampered payload", func(t *testing.T) {
		raw, err := base64.URLEncoding.DecodeString(payload)
		require.NoError(t, err)
		raw[len(raw)-1] ^= 0x01

		_, err = c.Open(base64.URLEncoding.EncodeToString(raw))
		requireCryptoCause(t, err, cryptoDomain.CauseAuthentication)
	})

	t.Run("tampered header", func(t *testing.T) {
		raw, err := base64.URLEncoding.DecodeString(payload)
		require.NoError(t, err)
		raw[9] ^= 0x01

		_, err = c.Open(base64.URLEncoding.EncodeToString(raw))
		requireCryptoCause(t, err, cryptoDomain.CauseAuthentication)
	})

	t.Run("different master key", func(t *testing.T) {
		other := newTestMessageCipher(t, cryptoDomain.GenerateMasterKey(cryptoDomain.KeySourceGenerated), cryptoDomain.AESGCM, 0)
		_, err := other.Open(payload)
		requireCryptoCause(t, err, cryptoDomain.CauseAuthentication)
	})

	t.Run("payload sealed with another algorithm", func(t *testing.T) {
		chacha := newTestMessageCipher(t, key, cryptoDomain.ChaCha20, 0)
		opened, err := chacha.Open(payload)
		require.NoError(t, err)
		assert.Equal(t, "Hello, room!", opened)
	})
}

func TestMessageCipher_TTL(t *testing.T) {
	key := cryptoDomain.GenerateMasterKey(cryptoDomain.KeySourceGenerated)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	c := newTestMessageCipher(t, key, cryptoDomain.AESGCM, time.Hour)
	c.now = func() time.Time { return now }

	payload, err := c.Seal("short lived")
	require.NoError(t, err)

	t.Run("within ttl", func(t *testing.T) {
		c.now = func() time.Time { return now.Add(59 * time.Minute) }
		opened, err := c.Open(payload)
		require.NoError(t, err)
		assert.Equal(t, "short lived", opened)
	})

	t.Run("expired", func(t *testing.T) {
		c.now = func() time.Time { return now.Add(2 * time.Hour) }
		_, err := c.Open(payload)
		requireCryptoCause(t, err, cryptoDomain.CauseExpired)
	})

	t.Run("issued in the future", func(t *testing.T) {
		c.now = func() time.Time { return now.Add(-5 * time.Minute) }
		_, err := c.Open(payload)
		requireCryptoCause(t, err, cryptoDomain.CauseMalformedToken)
	})

	t.Run("no ttl never expires", func(t *testing.T) {
		forever := newTestMessageCipher(t, key, cryptoDomain.AESGCM, 0)
		forever.now = func() time.Time { return now.Add(24 * 365 * time.Hour) }
		opened, err := forever.Open(payload)
		require.NoError(t, err)
		assert.Equal(t, "short lived", opened)
	})
}

func TestNewMessageCipher_InvalidAlgorithm(t *testing.T) {
	_, err := NewMessageCipher(
		cryptoDomain.GenerateMasterKey(cryptoDomain.KeySourceGenerated),
		cryptoDomain.Algorithm("rc4"),
		NewAEADManager(),
		0,
	)
	assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
}
