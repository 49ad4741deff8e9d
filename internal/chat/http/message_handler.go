package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/securemessenger/internal/chat/domain"
	"github.com/allisson/securemessenger/internal/chat/http/dto"
	"github.com/allisson/securemessenger/internal/chat/usecase"
	"github.com/allisson/securemessenger/internal/httputil"
	customValidation "github.com/allisson/securemessenger/internal/validation"
)

// MessageHandler handles sending and reading encrypted messages.
type MessageHandler struct {
	messageUseCase usecase.MessageUseCase
	logger         *slog.Logger
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageUseCase usecase.MessageUseCase, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		messageUseCase: messageUseCase,
		logger:         logger,
	}
}

// SendHandler encrypts and stores a message.
// POST /v1/rooms/:id/messages - Returns 201 Created with the plaintext view.
func (h *MessageHandler) SendHandler(c *gin.Context) {
	user, ok := currentUser(c, h.logger)
	if !ok {
		return
	}

	roomID, ok := roomIDParam(c, h.logger)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	view, err := h.messageUseCase.SendMessage(
		c.Request.Context(),
		dto.ToSendMessageInput(req, roomID, user.ID, user.Username),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMessageResponse(view))
}

// ListHandler returns recent messages, oldest first.
// GET /v1/rooms/:id/messages?limit=50
func (h *MessageHandler) ListHandler(c *gin.Context) {
	user, ok := currentUser(c, h.logger)
	if !ok {
		return
	}

	roomID, ok := roomIDParam(c, h.logger)
	if !ok {
		return
	}

	limit, err := httputil.ParseLimit(c, domain.DefaultHistoryLimit)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	views, err := h.messageUseCase.ListRecentMessages(c.Request.Context(), roomID, user.ID, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListMessagesResponse(views))
}
