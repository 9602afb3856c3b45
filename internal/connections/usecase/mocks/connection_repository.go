// Package mocks contains mock implementations of connection interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	connectionsDomain "github.com/locksetdev/vault/internal/connections/domain"
)

// MockConnectionRepository is a mock implementation of the ConnectionRepository interface.
type MockConnectionRepository struct {
	mock.Mock
}

func (m *MockConnectionRepository) Create(
	ctx context.Context,
	conn *connectionsDomain.VaultConnection,
) error {
	args := m.Called(ctx, conn)
	return args.Error(0)
}

func (m *MockConnectionRepository) GetByPublicID(
	ctx context.Context,
	publicID string,
) (*connectionsDomain.VaultConnection, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*connectionsDomain.VaultConnection), args.Error(1)
}

func (m *MockConnectionRepository) GetByPublicIDForUpdate(
	ctx context.Context,
	publicID string,
) (*connectionsDomain.VaultConnection, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*connectionsDomain.VaultConnection), args.Error(1)
}

func (m *MockConnectionRepository) Update(
	ctx context.Context,
	conn *connectionsDomain.VaultConnection,
) error {
	args := m.Called(ctx, conn)
	return args.Error(0)
}

func (m *MockConnectionRepository) Delete(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}
