package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
)

// MockDekRepository is a mock implementation of DekRepository for testing.
type MockDekRepository struct {
	mock.Mock
}

// Create mocks the Create method of DekRepository.
func (m *MockDekRepository) Create(ctx context.Context, dek *cryptoDomain.Dek) error {
	args := m.Called(ctx, dek)
	return args.Error(0)
}

// Get mocks the Get method of DekRepository.
func (m *MockDekRepository) Get(ctx context.Context, dekID uuid.UUID) (*cryptoDomain.Dek, error) {
	args := m.Called(ctx, dekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Dek), args.Error(1)
}

// GetLatest mocks the GetLatest method of DekRepository.
func (m *MockDekRepository) GetLatest(ctx context.Context) (*cryptoDomain.Dek, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Dek), args.Error(1)
}
