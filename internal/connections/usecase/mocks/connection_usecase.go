package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	connectionsDomain "github.com/locksetdev/vault/internal/connections/domain"
	"github.com/locksetdev/vault/internal/connections/usecase"
)

// MockConnectionUseCase is a mock implementation of the ConnectionUseCase interface.
type MockConnectionUseCase struct {
	mock.Mock
}

func (m *MockConnectionUseCase) Create(
	ctx context.Context,
	input *usecase.CreateConnectionInput,
) (*connectionsDomain.VaultConnection, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*connectionsDomain.VaultConnection), args.Error(1)
}

func (m *MockConnectionUseCase) Get(
	ctx context.Context,
	publicID string,
) (*connectionsDomain.VaultConnection, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*connectionsDomain.VaultConnection), args.Error(1)
}

func (m *MockConnectionUseCase) Update(
	ctx context.Context,
	publicID string,
	input *usecase.UpdateConnectionInput,
) (*connectionsDomain.VaultConnection, error) {
	args := m.Called(ctx, publicID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*connectionsDomain.VaultConnection), args.Error(1)
}

func (m *MockConnectionUseCase) Delete(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}
