package dto

import (
	"time"

	authDomain "github.com/allisson/securemessenger/internal/auth/domain"
)

// LoginResponse is returned once per login. The token cannot be retrieved again.
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MapLoginOutputToResponse converts a login output into its API representation.
func MapLoginOutputToResponse(output *authDomain.LoginOutput) LoginResponse {
	return LoginResponse{
		Token:     output.PlainToken,
		TokenType: "Bearer",
		UserID:    output.UserID.String(),
		ExpiresAt: output.ExpiresAt,
	}
}
