package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/securemessenger/internal/auth/service"
	authUseCase "github.com/allisson/securemessenger/internal/auth/usecase"
	apperrors "github.com/allisson/securemessenger/internal/errors"
	"github.com/allisson/securemessenger/internal/httputil"
)

const bearerPrefix = "bearer "

// AuthenticationMiddleware authenticates requests with an "Authorization: Bearer <token>"
// header. The prefix is matched case-insensitively. On success the user and the token
// hash are stored in the request context.
//
// Missing, malformed, unknown, expired and revoked tokens all produce 401.
func AuthenticationMiddleware(
	sessionUseCase authUseCase.SessionUseCase,
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainToken, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		tokenHash := tokenService.HashToken(plainToken)

		user, err := sessionUseCase.Authenticate(c.Request.Context(), tokenHash)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithUser(c.Request.Context(), user)
		ctx = WithTokenHash(ctx, tokenHash)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful", slog.String("user_id", user.ID.String()))

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
