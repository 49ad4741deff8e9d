// Package dto provides data transfer objects for the chat HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/securemessenger/internal/chat/domain"
	appValidation "github.com/allisson/securemessenger/internal/validation"
)

// MaxMessageLength bounds message content in runes.
const MaxMessageLength = 4096

// CreateRoomRequest represents the API request to create a room.
type CreateRoomRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks field shapes. Name uniqueness is enforced by the use case.
func (r *CreateRoomRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			appValidation.RuneLength(domain.MinRoomNameLength, domain.MaxRoomNameLength),
		),
		validation.Field(&r.Description,
			appValidation.RuneLength(0, 500),
		),
	)
}

// JoinRoomRequest represents the API request to join a room by name.
type JoinRoomRequest struct {
	Name string `json:"name"`
}

func (r *JoinRoomRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
		),
	)
}

// SendMessageRequest represents the API request to post a message.
type SendMessageRequest struct {
	Content string `json:"content"`
}

func (r *SendMessageRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			appValidation.NotBlank,
			appValidation.ValidUTF8,
			appValidation.RuneLength(1, MaxMessageLength),
		),
	)
}
