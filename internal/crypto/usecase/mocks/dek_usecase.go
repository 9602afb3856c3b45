package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
)

// MockDekUseCase is a mock implementation of DekUseCase for testing.
type MockDekUseCase struct {
	mock.Mock
}

// Active mocks the Active method of DekUseCase.
func (m *MockDekUseCase) Active(
	ctx context.Context,
	alg cryptoDomain.Algorithm,
) (*cryptoDomain.Dek, []byte, error) {
	args := m.Called(ctx, alg)
	var dek *cryptoDomain.Dek
	var key []byte
	if args.Get(0) != nil {
		dek = args.Get(0).(*cryptoDomain.Dek)
	}
	if args.Get(1) != nil {
		key = args.Get(1).([]byte)
	}
	return dek, key, args.Error(2)
}

// Unwrap mocks the Unwrap method of DekUseCase.
func (m *MockDekUseCase) Unwrap(
	ctx context.Context,
	dekID uuid.UUID,
) (*cryptoDomain.Dek, []byte, error) {
	args := m.Called(ctx, dekID)
	var dek *cryptoDomain.Dek
	var key []byte
	if args.Get(0) != nil {
		dek = args.Get(0).(*cryptoDomain.Dek)
	}
	if args.Get(1) != nil {
		key = args.Get(1).([]byte)
	}
	return dek, key, args.Error(2)
}

// Rotate mocks the Rotate method of DekUseCase.
func (m *MockDekUseCase) Rotate(
	ctx context.Context,
	alg cryptoDomain.Algorithm,
) (*cryptoDomain.Dek, error) {
	args := m.Called(ctx, alg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Dek), args.Error(1)
}
