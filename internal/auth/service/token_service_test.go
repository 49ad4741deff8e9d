package service

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_GenerateToken(t *testing.T) {
	service := NewTokenService()

	t.Run("Success_GenerateToken", func(t *testing.T) {
		plainToken, tokenHash, err := service.GenerateToken()
		require.NoError(t, err)

		decoded, err := base64.RawURLEncoding.DecodeString(plainToken)
		require.NoError(t, err)
		assert.Len(t, decoded, 32)

		expected := sha256.Sum256([]byte(plainToken))
		assert.Equal(t, hex.EncodeToString(expected[:]), tokenHash)
	})

	t.Run("Success_GenerateUniqueTokens", func(t *testing.T) {
		plainToken1, tokenHash1, err := service.GenerateToken()
		require.NoError(t, err)
		plainToken2, tokenHash2, err := service.GenerateToken()
		require.NoError(t, err)

		assert.NotEqual(t, plainToken1, plainToken2)
		assert.NotEqual(t, tokenHash1, tokenHash2)
	})
}

func TestTokenService_HashToken(t *testing.T) {
	service := NewTokenService()

	assert.Equal(t, service.HashToken("abc"), service.HashToken("abc"))
	assert.NotEqual(t, service.HashToken("abc"), service.HashToken("abd"))
	assert.Len(t, service.HashToken(""), 64)
}
