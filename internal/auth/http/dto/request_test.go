package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request LoginRequest
		wantErr bool
	}{
		{"valid", LoginRequest{Username: "alice", Password: "secret1"}, false},
		{"missing username", LoginRequest{Password: "secret1"}, true},
		{"blank username", LoginRequest{Username: "   ", Password: "secret1"}, true},
		{"missing password", LoginRequest{Username: "alice"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
