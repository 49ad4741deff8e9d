package commands

import (
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/securemessenger/internal/crypto/domain"
	cryptoService "github.com/allisson/securemessenger/internal/crypto/service"
)

// RunCreateMasterKey writes a new random master key to path with mode 0600.
// It refuses to touch an existing file: replacing the key makes every stored message
// unreadable. Key material is zeroed once written and is never printed.
func RunCreateMasterKey(logger *slog.Logger, writer io.Writer, path, format string) error {
	if path == "" {
		return fmt.Errorf("master key file path is required")
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	key := cryptoDomain.GenerateMasterKey(cryptoDomain.KeySourceGenerated)
	defer key.Close()

	created, err := cryptoService.CreateKeyFile(path, key)
	if err != nil {
		return fmt.Errorf("failed to create master key: %w", err)
	}
	if !created {
		return fmt.Errorf("master key file %s already exists, refusing to overwrite it", path)
	}

	logger.Info("master key created", slog.String("path", path))

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"path":    path,
			"created": true,
		})
	}

	_, _ = fmt.Fprintf(writer, "Master key written to %s\n", path)
	_, _ = fmt.Fprintln(writer, "# Back this file up. Messages cannot be decrypted without it.")
	_, _ = fmt.Fprintf(writer, "MASTER_KEY_FILE=%q\n", path)
	return nil
}
