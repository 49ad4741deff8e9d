package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/securemessenger/internal/auth/domain"
	"github.com/allisson/securemessenger/internal/auth/http/dto"
	authUseCase "github.com/allisson/securemessenger/internal/auth/usecase"
	apperrors "github.com/allisson/securemessenger/internal/errors"
	"github.com/allisson/securemessenger/internal/httputil"
	customValidation "github.com/allisson/securemessenger/internal/validation"
)

// SessionHandler handles login and logout.
type SessionHandler struct {
	sessionUseCase authUseCase.SessionUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessionUseCase authUseCase.SessionUseCase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// LoginHandler exchanges username and password for a bearer token.
// POST /v1/sessions - Returns 201 Created with the token.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.sessionUseCase.Login(c.Request.Context(), &authDomain.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("user logged in", slog.String("user_id", output.UserID.String()))
	c.JSON(http.StatusCreated, dto.MapLoginOutputToResponse(output))
}

// LogoutHandler revokes the session that authenticated the request.
// DELETE /v1/sessions - Requires AuthenticationMiddleware. Returns 204 No Content.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	tokenHash, ok := GetTokenHash(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.sessionUseCase.Logout(c.Request.Context(), tokenHash); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
