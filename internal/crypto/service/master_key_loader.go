package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	cryptoDomain "github.com/allisson/securemessenger/internal/crypto/domain"
)

// MasterKeyLoader acquires the process master key, trying in order:
//
//  1. the key file at path, reading it if present or creating it if absent
//  2. a key derived from the passphrase (MASTER_ENCRYPTION_KEY)
//  3. a fresh ephemeral key
//
// Acquisition runs once per loader; later Load calls return the same key.
type MasterKeyLoader struct {
	path       string
	passphrase string
	logger     *slog.Logger

	once sync.Once
	key  *cryptoDomain.MasterKey
}

// NewMasterKeyLoader creates a MasterKeyLoader.
func NewMasterKeyLoader(path, passphrase string, logger *slog.Logger) *MasterKeyLoader {
	return &MasterKeyLoader{
		path:       path,
		passphrase: passphrase,
		logger:     logger,
	}
}

// Load returns the master key, acquiring it on first call.
func (l *MasterKeyLoader) Load(ctx context.Context) *cryptoDomain.MasterKey {
	l.once.Do(func() {
		l.key = l.acquire(ctx)
	})
	return l.key
}

func (l *MasterKeyLoader) acquire(ctx context.Context) *cryptoDomain.MasterKey {
	key, err := l.loadOrCreate()
	if err == nil {
		l.logger.InfoContext(ctx, "master key ready",
			slog.String("source", string(key.Source)),
			slog.String("path", l.path),
		)
		return key
	}

	l.logger.ErrorContext(ctx, "master key file unusable",
		slog.String("path", l.path),
		slog.Any("error", err),
	)

	if l.passphrase != "" {
		l.logger.WarnContext(ctx, "using master key derived from MASTER_ENCRYPTION_KEY")
		return cryptoDomain.MasterKeyFromPassphrase(l.passphrase)
	}

	l.logger.WarnContext(ctx,
		"using ephemeral master key, messages stored now will be unreadable after restart",
	)
	return cryptoDomain.GenerateMasterKey(cryptoDomain.KeySourceEphemeral)
}

// loadOrCreate never overwrites an existing file, even one that fails to parse.
func (l *MasterKeyLoader) loadOrCreate() (*cryptoDomain.MasterKey, error) {
	key, err := ReadKeyFile(l.path)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return key, err
	}

	key = cryptoDomain.GenerateMasterKey(cryptoDomain.KeySourceGenerated)
	created, err := CreateKeyFile(l.path, key)
	if err != nil {
		key.Close()
		return nil, err
	}
	if created {
		return key, nil
	}

	// Another process created the file first; adopt its key.
	key.Close()
	return ReadKeyFile(l.path)
}

// ReadKeyFile reads and decodes a master key file.
func ReadKeyFile(path string) (*cryptoDomain.MasterKey, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(data)

	key, err := cryptoDomain.ParseMasterKey(data, cryptoDomain.KeySourceFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return key, nil
}

// CreateKeyFile writes key to path with mode 0600 only if path does not exist yet.
// It reports false, without error, when the file already exists.
//
// The key is written to a temporary file in the same directory and then hard-linked
// into place, so a concurrent reader never observes a partially written key.
func CreateKeyFile(path string, key *cryptoDomain.MasterKey) (bool, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return false, fmt.Errorf("failed to create temporary key file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.WriteString(key.Encode()); err != nil {
		_ = tmp.Close()
		return false, fmt.Errorf("failed to write key file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return false, fmt.Errorf("failed to set key file permissions: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return false, fmt.Errorf("failed to sync key file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("failed to close key file: %w", err)
	}

	if err := os.Link(tmpName, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to install key file: %w", err)
	}
	return true, nil
}
