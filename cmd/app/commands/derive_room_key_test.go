package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/securemessenger/internal/crypto/domain"
	cryptoMocks "github.com/allisson/securemessenger/internal/crypto/usecase/mocks"
)

func TestRunDeriveRoomKey(t *testing.T) {
	ctx := context.Background()
	roomKey := &cryptoDomain.RoomKey{
		RoomID: "general",
		UserID: "alice",
		Key:    bytes.Repeat([]byte{0x01}, cryptoDomain.KeySize),
	}

	t.Run("text-output", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		mockUseCase := &cryptoMocks.MockEncryptionUseCase{}
		mockUseCase.On("DeriveRoomKey", ctx, "general", "alice").Return(roomKey, nil)
		mockUseCase.On("KeySource").Return(cryptoDomain.KeySourceFile)

		var out bytes.Buffer
		err := RunDeriveRoomKey(ctx, mockUseCase, logger, &out, "general", "alice", "text")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Key: "+roomKey.String())
		assert.Contains(t, out.String(), "Key source: file")
		assert.NotContains(t, logs.String(), roomKey.String())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		mockUseCase := &cryptoMocks.MockEncryptionUseCase{}
		mockUseCase.On("DeriveRoomKey", ctx, "general", "alice").Return(roomKey, nil)
		mockUseCase.On("KeySource").Return(cryptoDomain.KeySourceEphemeral)

		var out bytes.Buffer
		err := RunDeriveRoomKey(ctx, mockUseCase, logger, &out, "general", "alice", "json")
		require.NoError(t, err)

		var result map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, roomKey.String(), result["key"])
		assert.Equal(t, "ephemeral", result["key_source"])
		mockUseCase.AssertExpectations(t)
	})

	t.Run("derive-error", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		mockUseCase := &cryptoMocks.MockEncryptionUseCase{}
		mockUseCase.On("DeriveRoomKey", ctx, "", "alice").
			Return(nil, cryptoDomain.NewCryptoError("derive_room_key", cryptoDomain.CauseInvalidInput, "room id is required", nil))

		err := RunDeriveRoomKey(ctx, mockUseCase, logger, &bytes.Buffer{}, "", "alice", "text")

		require.Error(t, err)
		assert.ErrorIs(t, err, cryptoDomain.ErrCrypto)
	})

	t.Run("invalid-format", func(t *testing.T) {
		mockUseCase := &cryptoMocks.MockEncryptionUseCase{}
		err := RunDeriveRoomKey(ctx, mockUseCase, slog.Default(), &bytes.Buffer{}, "general", "alice", "xml")

		require.Error(t, err)
		mockUseCase.AssertNotCalled(t, "DeriveRoomKey")
	})
}
