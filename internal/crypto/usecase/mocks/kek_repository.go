// Package mocks provides mock implementations for testing key management use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
)

// MockKekRepository is a mock implementation of KekRepository for testing.
type MockKekRepository struct {
	mock.Mock
}

// Create mocks the Create method of KekRepository.
func (m *MockKekRepository) Create(ctx context.Context, kek *cryptoDomain.Kek) error {
	args := m.Called(ctx, kek)
	return args.Error(0)
}

// Get mocks the Get method of KekRepository.
func (m *MockKekRepository) Get(ctx context.Context, kekID uuid.UUID) (*cryptoDomain.Kek, error) {
	args := m.Called(ctx, kekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Kek), args.Error(1)
}

// GetLatest mocks the GetLatest method of KekRepository.
func (m *MockKekRepository) GetLatest(ctx context.Context) (*cryptoDomain.Kek, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Kek), args.Error(1)
}

// List mocks the List method of KekRepository.
func (m *MockKekRepository) List(ctx context.Context) ([]*cryptoDomain.Kek, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cryptoDomain.Kek), args.Error(1)
}

// Delete mocks the Delete method of KekRepository.
func (m *MockKekRepository) Delete(ctx context.Context, kekID uuid.UUID) error {
	args := m.Called(ctx, kekID)
	return args.Error(0)
}
