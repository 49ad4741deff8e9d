// Package mocks provides mock implementations of the crypto use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/securemessenger/internal/crypto/domain"
)

// MockEncryptionUseCase is a mock implementation of EncryptionUseCase.
type MockEncryptionUseCase struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method.
func (m *MockEncryptionUseCase) Encrypt(ctx context.Context, plaintext string) (string, error) {
	args := m.Called(ctx, plaintext)
	return args.String(0), args.Error(1)
}

// Decrypt mocks the Decrypt method.
func (m *MockEncryptionUseCase) Decrypt(ctx context.Context, payload string) (string, error) {
	args := m.Called(ctx, payload)
	return args.String(0), args.Error(1)
}

// DeriveRoomKey mocks the DeriveRoomKey method.
func (m *MockEncryptionUseCase) DeriveRoomKey(
	ctx context.Context,
	roomID, userID string,
) (*cryptoDomain.RoomKey, error) {
	args := m.Called(ctx, roomID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.RoomKey), args.Error(1)
}

// KeySource mocks the KeySource method.
func (m *MockEncryptionUseCase) KeySource() cryptoDomain.KeySource {
	args := m.Called()
	return args.Get(0).(cryptoDomain.KeySource)
}
