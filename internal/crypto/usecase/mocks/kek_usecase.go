package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
)

// MockKekUseCase is a mock implementation of KekUseCase for testing.
type MockKekUseCase struct {
	mock.Mock
}

// Register mocks the Register method of KekUseCase.
func (m *MockKekUseCase) Register(ctx context.Context, kmsKey string) (*cryptoDomain.Kek, error) {
	args := m.Called(ctx, kmsKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Kek), args.Error(1)
}

// Get mocks the Get method of KekUseCase.
func (m *MockKekUseCase) Get(ctx context.Context, kekID uuid.UUID) (*cryptoDomain.Kek, error) {
	args := m.Called(ctx, kekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Kek), args.Error(1)
}

// List mocks the List method of KekUseCase.
func (m *MockKekUseCase) List(ctx context.Context) ([]*cryptoDomain.Kek, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cryptoDomain.Kek), args.Error(1)
}

// Remove mocks the Remove method of KekUseCase.
func (m *MockKekUseCase) Remove(ctx context.Context, kekID uuid.UUID) error {
	args := m.Called(ctx, kekID)
	return args.Error(0)
}
