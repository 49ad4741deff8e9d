package app

import (
	"fmt"

	authUseCase "github.com/allisson/securemessenger/internal/auth/usecase"
	"github.com/allisson/securemessenger/internal/database"
	userHTTP "github.com/allisson/securemessenger/internal/user/http"
	userRepository "github.com/allisson/securemessenger/internal/user/repository"
	userUseCase "github.com/allisson/securemessenger/internal/user/usecase"
)

// userStore is the union of what the user and auth modules need from user storage.
type userStore interface {
	userUseCase.UserRepository
	authUseCase.UserRepository
}

type userComponents struct {
	userRepo    lazy[userStore]
	userUseCase lazy[userUseCase.UseCase]
	userHandler lazy[*userHTTP.UserHandler]
}

func (c *Container) UserRepository() (userStore, error) {
	return c.userRepo.get(func() (userStore, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for user repository: %w", err)
		}

		switch c.config.DBDriver {
		case database.DriverPostgres:
			return userRepository.NewPostgreSQLUserRepository(db), nil
		case database.DriverMySQL:
			return userRepository.NewMySQLUserRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

// UserUseCase registers users and joins them to the default room.
func (c *Container) UserUseCase() (userUseCase.UseCase, error) {
	return c.userUseCase.get(func() (userUseCase.UseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for user use case: %w", err)
		}
		userRepo, err := c.UserRepository()
		if err != nil {
			return nil, err
		}
		passwordService, err := c.PasswordService()
		if err != nil {
			return nil, fmt.Errorf("failed to create password service: %w", err)
		}
		roomUseCase, err := c.RoomUseCase()
		if err != nil {
			return nil, err
		}
		bm, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		useCase := userUseCase.NewUserUseCase(txManager, userRepo, passwordService, roomUseCase)
		return userUseCase.NewUserUseCaseWithMetrics(useCase, bm), nil
	})
}

func (c *Container) UserHandler() (*userHTTP.UserHandler, error) {
	return c.userHandler.get(func() (*userHTTP.UserHandler, error) {
		useCase, err := c.UserUseCase()
		if err != nil {
			return nil, err
		}
		return userHTTP.NewUserHandler(useCase, c.Logger()), nil
	})
}
