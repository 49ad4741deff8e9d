package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allisson/go-env"

	cryptoDomain "github.com/allisson/securemessenger/internal/crypto/domain"
	cryptoService "github.com/allisson/securemessenger/internal/crypto/service"
	cryptoUseCase "github.com/allisson/securemessenger/internal/crypto/usecase"
)

// masterKeyPassphraseEnv is read directly so the passphrase never sits in Config.
const masterKeyPassphraseEnv = "MASTER_ENCRYPTION_KEY"

type cryptoComponents struct {
	masterKey         lazy[*cryptoDomain.MasterKey]
	messageSealer     lazy[cryptoService.MessageSealer]
	encryptionUseCase lazy[cryptoUseCase.EncryptionUseCase]
}

// MasterKey acquires the process master key once. Acquisition never fails; the
// resulting KeySource is logged and counted as crypto/master_key_acquire.
func (c *Container) MasterKey(ctx context.Context) *cryptoDomain.MasterKey {
	key, _ := c.masterKey.get(func() (*cryptoDomain.MasterKey, error) {
		logger := c.Logger()
		loader := cryptoService.NewMasterKeyLoader(
			c.config.MasterKeyFile,
			env.GetString(masterKeyPassphraseEnv, ""),
			logger,
		)
		key := loader.Load(ctx)

		if bm, err := c.BusinessMetrics(); err == nil {
			bm.RecordOperation(ctx, "crypto", "master_key_acquire", string(key.Source))
		} else {
			logger.WarnContext(ctx, "master key acquisition not recorded", slog.Any("error", err))
		}
		return key, nil
	})
	return key
}

func (c *Container) MessageSealer() (cryptoService.MessageSealer, error) {
	return c.messageSealer.get(func() (cryptoService.MessageSealer, error) {
		algorithm, err := cryptoDomain.ParseAlgorithm(c.config.MessageCipherAlgorithm)
		if err != nil {
			return nil, fmt.Errorf("invalid MESSAGE_CIPHER_ALGORITHM %q: %w", c.config.MessageCipherAlgorithm, err)
		}

		sealer, err := cryptoService.NewMessageCipher(
			c.MasterKey(context.Background()),
			algorithm,
			cryptoService.NewAEADManager(),
			c.config.MessageTTL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create message cipher: %w", err)
		}
		return sealer, nil
	})
}

// EncryptionUseCase returns the encryption service used by the chat module and the CLI.
func (c *Container) EncryptionUseCase() (cryptoUseCase.EncryptionUseCase, error) {
	return c.encryptionUseCase.get(func() (cryptoUseCase.EncryptionUseCase, error) {
		sealer, err := c.MessageSealer()
		if err != nil {
			return nil, err
		}
		bm, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		useCase := cryptoUseCase.NewEncryptionUseCase(
			c.MasterKey(context.Background()),
			sealer,
			cryptoService.NewRoomKeyDeriver(),
			c.Logger(),
		)
		return cryptoUseCase.NewEncryptionUseCaseWithMetrics(useCase, bm), nil
	})
}
