// Package http provides HTTP handlers for rooms and encrypted messages.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/securemessenger/internal/auth/http"
	"github.com/allisson/securemessenger/internal/chat/http/dto"
	"github.com/allisson/securemessenger/internal/chat/usecase"
	apperrors "github.com/allisson/securemessenger/internal/errors"
	"github.com/allisson/securemessenger/internal/httputil"
	userDomain "github.com/allisson/securemessenger/internal/user/domain"
	customValidation "github.com/allisson/securemessenger/internal/validation"
)

// RoomHandler handles room and membership HTTP requests.
type RoomHandler struct {
	roomUseCase usecase.RoomUseCase
	logger      *slog.Logger
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(roomUseCase usecase.RoomUseCase, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{
		roomUseCase: roomUseCase,
		logger:      logger,
	}
}

// CreateHandler creates a room with the caller as its first member.
// POST /v1/rooms - Returns 201 Created.
func (h *RoomHandler) CreateHandler(c *gin.Context) {
	user, ok := currentUser(c, h.logger)
	if !ok {
		return
	}

	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	room, err := h.roomUseCase.CreateRoom(c.Request.Context(), dto.ToCreateRoomInput(req, user.ID))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("room created",
		slog.String("room_id", room.ID.String()),
		slog.String("user_id", user.ID.String()),
	)
	c.JSON(http.StatusCreated, dto.ToRoomResponse(room))
}

// JoinHandler joins a room by name.
// POST /v1/rooms/join - Returns 200 OK; already_member reports a repeated join.
func (h *RoomHandler) JoinHandler(c *gin.Context) {
	user, ok := currentUser(c, h.logger)
	if !ok {
		return
	}

	var req dto.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.roomUseCase.JoinRoom(c.Request.Context(), req.Name, user.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToJoinRoomResponse(output))
}

// ListHandler lists the caller's rooms.
// GET /v1/rooms
func (h *RoomHandler) ListHandler(c *gin.Context) {
	user, ok := currentUser(c, h.logger)
	if !ok {
		return
	}

	rooms, err := h.roomUseCase.ListRooms(c.Request.Context(), user.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListRoomsResponse(rooms))
}

// MembersHandler lists a room's members. The caller must be a member.
// GET /v1/rooms/:id/members
func (h *RoomHandler) MembersHandler(c *gin.Context) {
	user, ok := currentUser(c, h.logger)
	if !ok {
		return
	}

	roomID, ok := roomIDParam(c, h.logger)
	if !ok {
		return
	}

	members, err := h.roomUseCase.ListMembers(c.Request.Context(), roomID, user.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListMembersResponse(members))
}

// currentUser writes 401 when the request was not authenticated.
func currentUser(c *gin.Context, logger *slog.Logger) (*userDomain.User, bool) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
		return nil, false
	}
	return user, true
}

func roomIDParam(c *gin.Context, logger *slog.Logger) (uuid.UUID, bool) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid room id: %w", err), logger)
		return uuid.Nil, false
	}
	return roomID, true
}
