package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoUseCase "github.com/allisson/securemessenger/internal/crypto/usecase"
)

// RunDeriveRoomKey prints the PBKDF2 subkey for a room/user pair under the active master key.
// Only the key source is logged; the derived key goes to writer alone.
func RunDeriveRoomKey(
	ctx context.Context,
	encryption cryptoUseCase.EncryptionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	roomID, userID, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	roomKey, err := encryption.DeriveRoomKey(ctx, roomID, userID)
	if err != nil {
		return fmt.Errorf("failed to derive room key: %w", err)
	}

	source := encryption.KeySource()
	logger.Info("room key derived",
		slog.String("room_id", roomID),
		slog.String("user_id", userID),
		slog.String("key_source", string(source)),
	)
	if !source.Persistent() {
		logger.Warn("room key derived from an ephemeral master key and cannot be reproduced")
	}

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"room_id":    roomKey.RoomID,
			"user_id":    roomKey.UserID,
			"key":        roomKey.String(),
			"key_source": source,
		})
	}

	_, _ = fmt.Fprintf(writer, "Room: %s\n", roomKey.RoomID)
	_, _ = fmt.Fprintf(writer, "User: %s\n", roomKey.UserID)
	_, _ = fmt.Fprintf(writer, "Key source: %s\n", source)
	_, _ = fmt.Fprintf(writer, "Key: %s\n", roomKey.String())
	return nil
}
