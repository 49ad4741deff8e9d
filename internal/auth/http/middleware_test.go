package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/securemessenger/internal/auth/domain"
	authUsecaseMocks "github.com/allisson/securemessenger/internal/auth/usecase/mocks"
)

func setupAuthenticatedRouter() (*gin.Engine, *authUsecaseMocks.MockSessionUseCase, *mockTokenService) {
	sessionUseCase := &authUsecaseMocks.MockSessionUseCase{}
	tokenService := &mockTokenService{}

	router := newTestRouter()
	router.GET("/protected",
		AuthenticationMiddleware(sessionUseCase, tokenService, discardLogger()),
		func(c *gin.Context) {
			user, ok := GetUser(c.Request.Context())
			if !ok {
				c.Status(http.StatusTeapot)
				return
			}
			tokenHash, _ := GetTokenHash(c.Request.Context())
			c.JSON(http.StatusOK, gin.H{"user_id": user.ID.String(), "token_hash": tokenHash})
		},
	)
	return router, sessionUseCase, tokenService
}

func TestAuthenticationMiddleware(t *testing.T) {
	t.Run("Success_ValidToken", func(t *testing.T) {
		router, sessionUseCase, tokenService := setupAuthenticatedRouter()
		user := testUser()

		tokenService.On("HashToken", "plain-token").Return("hashed").Once()
		sessionUseCase.On("Authenticate", mock.Anything, "hashed").Return(user, nil).Once()

		w := doRequest(t, router, http.MethodGet, "/protected", nil, map[string]string{
			"Authorization": "Bearer plain-token",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), user.ID.String())
		assert.Contains(t, w.Body.String(), "hashed")
		sessionUseCase.AssertExpectations(t)
		tokenService.AssertExpectations(t)
	})

	t.Run("Success_CaseInsensitivePrefix", func(t *testing.T) {
		router, sessionUseCase, tokenService := setupAuthenticatedRouter()

		tokenService.On("HashToken", "plain-token").Return("hashed").Once()
		sessionUseCase.On("Authenticate", mock.Anything, "hashed").Return(testUser(), nil).Once()

		w := doRequest(t, router, http.MethodGet, "/protected", nil, map[string]string{
			"Authorization": "bEaReR plain-token",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	rejected := []struct {
		name   string
		header string
	}{
		{"Error_MissingHeader", ""},
		{"Error_WrongScheme", "Basic dXNlcjpwYXNz"},
		{"Error_EmptyToken", "Bearer "},
		{"Error_WhitespaceToken", "Bearer    "},
	}

	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			router, sessionUseCase, tokenService := setupAuthenticatedRouter()

			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}

			w := doRequest(t, router, http.MethodGet, "/protected", nil, headers)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			sessionUseCase.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
			tokenService.AssertNotCalled(t, "HashToken", mock.Anything)
		})
	}

	t.Run("Error_InvalidSession", func(t *testing.T) {
		router, sessionUseCase, tokenService := setupAuthenticatedRouter()

		tokenService.On("HashToken", "expired").Return("hashed").Once()
		sessionUseCase.On("Authenticate", mock.Anything, "hashed").
			Return(nil, authDomain.ErrInvalidCredentials).Once()

		w := doRequest(t, router, http.MethodGet, "/protected", nil, map[string]string{
			"Authorization": "Bearer expired",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		router, sessionUseCase, tokenService := setupAuthenticatedRouter()

		tokenService.On("HashToken", "token").Return("hashed").Once()
		sessionUseCase.On("Authenticate", mock.Anything, "hashed").Return(nil, errors.New("db down")).Once()

		w := doRequest(t, router, http.MethodGet, "/protected", nil, map[string]string{
			"Authorization": "Bearer token",
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
