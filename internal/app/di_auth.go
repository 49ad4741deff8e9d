package app

import (
	"fmt"

	authHTTP "github.com/allisson/securemessenger/internal/auth/http"
	authRepository "github.com/allisson/securemessenger/internal/auth/repository"
	authService "github.com/allisson/securemessenger/internal/auth/service"
	authUseCase "github.com/allisson/securemessenger/internal/auth/usecase"
	"github.com/allisson/securemessenger/internal/database"
)

type authComponents struct {
	passwordService   lazy[authService.PasswordService]
	tokenService      lazy[authService.TokenService]
	sessionRepository lazy[authUseCase.SessionRepository]
	sessionUseCase    lazy[authUseCase.SessionUseCase]
	sessionHandler    lazy[*authHTTP.SessionHandler]
}

func (c *Container) PasswordService() (authService.PasswordService, error) {
	return c.passwordService.get(authService.NewPasswordService)
}

func (c *Container) TokenService() authService.TokenService {
	service, _ := c.tokenService.get(func() (authService.TokenService, error) {
		return authService.NewTokenService(), nil
	})
	return service
}

func (c *Container) SessionRepository() (authUseCase.SessionRepository, error) {
	return c.sessionRepository.get(func() (authUseCase.SessionRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for session repository: %w", err)
		}

		switch c.config.DBDriver {
		case database.DriverPostgres:
			return authRepository.NewPostgreSQLSessionRepository(db), nil
		case database.DriverMySQL:
			return authRepository.NewMySQLSessionRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
	return c.sessionUseCase.get(func() (authUseCase.SessionUseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for session use case: %w", err)
		}
		sessionRepo, err := c.SessionRepository()
		if err != nil {
			return nil, err
		}
		userRepo, err := c.UserRepository()
		if err != nil {
			return nil, err
		}
		passwordService, err := c.PasswordService()
		if err != nil {
			return nil, fmt.Errorf("failed to create password service: %w", err)
		}
		bm, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		useCase := authUseCase.NewSessionUseCase(
			txManager,
			sessionRepo,
			userRepo,
			passwordService,
			c.TokenService(),
			c.config.SessionExpiration,
		)
		return authUseCase.NewSessionUseCaseWithMetrics(useCase, bm), nil
	})
}

func (c *Container) SessionHandler() (*authHTTP.SessionHandler, error) {
	return c.sessionHandler.get(func() (*authHTTP.SessionHandler, error) {
		useCase, err := c.SessionUseCase()
		if err != nil {
			return nil, err
		}
		return authHTTP.NewSessionHandler(useCase, c.Logger()), nil
	})
}
