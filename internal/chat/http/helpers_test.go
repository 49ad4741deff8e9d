package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	authHTTP "github.com/allisson/securemessenger/internal/auth/http"
	chatUsecaseMocks "github.com/allisson/securemessenger/internal/chat/usecase/mocks"
	userDomain "github.com/allisson/securemessenger/internal/user/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testUser() *userDomain.User {
	return &userDomain.User{ID: uuid.Must(uuid.NewV7()), Username: "alice", Email: "alice@example.com"}
}

func setupChatRouter(
	current *userDomain.User,
) (*gin.Engine, *chatUsecaseMocks.MockRoomUseCase, *chatUsecaseMocks.MockMessageUseCase) {
	gin.SetMode(gin.TestMode)

	roomUseCase := &chatUsecaseMocks.MockRoomUseCase{}
	messageUseCase := &chatUsecaseMocks.MockMessageUseCase{}
	rooms := NewRoomHandler(roomUseCase, discardLogger())
	messages := NewMessageHandler(messageUseCase, discardLogger())

	router := gin.New()
	v1 := router.Group("/v1", func(c *gin.Context) {
		if current != nil {
			c.Request = c.Request.WithContext(authHTTP.WithUser(c.Request.Context(), current))
		}
		c.Next()
	})
	v1.POST("/rooms", rooms.CreateHandler)
	v1.POST("/rooms/join", rooms.JoinHandler)
	v1.GET("/rooms", rooms.ListHandler)
	v1.GET("/rooms/:id/members", rooms.MembersHandler)
	v1.POST("/rooms/:id/messages", messages.SendHandler)
	v1.GET("/rooms/:id/messages", messages.ListHandler)

	return router, roomUseCase, messageUseCase
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
