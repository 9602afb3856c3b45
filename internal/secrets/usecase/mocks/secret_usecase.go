package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/locksetdev/vault/internal/secrets/domain"
	"github.com/locksetdev/vault/internal/secrets/usecase"
)

// MockSecretUseCase is a mock implementation of the SecretUseCase interface.
type MockSecretUseCase struct {
	mock.Mock
}

func (m *MockSecretUseCase) Create(
	ctx context.Context,
	input *usecase.CreateSecretInput,
) (*secretsDomain.Secret, *secretsDomain.SecretVersion, error) {
	args := m.Called(ctx, input)

	var secret *secretsDomain.Secret
	if args.Get(0) != nil {
		secret = args.Get(0).(*secretsDomain.Secret)
	}
	var version *secretsDomain.SecretVersion
	if args.Get(1) != nil {
		version = args.Get(1).(*secretsDomain.SecretVersion)
	}
	return secret, version, args.Error(2)
}

func (m *MockSecretUseCase) CreateVersion(
	ctx context.Context,
	name string,
	input *usecase.CreateVersionInput,
) (*secretsDomain.SecretVersion, error) {
	args := m.Called(ctx, name, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.SecretVersion), args.Error(1)
}

func (m *MockSecretUseCase) GetCurrent(
	ctx context.Context,
	name string,
) (*secretsDomain.Secret, *secretsDomain.SecretVersion, error) {
	args := m.Called(ctx, name)

	var secret *secretsDomain.Secret
	if args.Get(0) != nil {
		secret = args.Get(0).(*secretsDomain.Secret)
	}
	var version *secretsDomain.SecretVersion
	if args.Get(1) != nil {
		version = args.Get(1).(*secretsDomain.SecretVersion)
	}
	return secret, version, args.Error(2)
}

func (m *MockSecretUseCase) GetVersion(
	ctx context.Context,
	name, versionTag string,
) (*secretsDomain.Secret, *secretsDomain.SecretVersion, error) {
	args := m.Called(ctx, name, versionTag)

	var secret *secretsDomain.Secret
	if args.Get(0) != nil {
		secret = args.Get(0).(*secretsDomain.Secret)
	}
	var version *secretsDomain.SecretVersion
	if args.Get(1) != nil {
		version = args.Get(1).(*secretsDomain.SecretVersion)
	}
	return secret, version, args.Error(2)
}

func (m *MockSecretUseCase) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockSecretUseCase) SoftDeleteVersion(ctx context.Context, name, versionTag string) error {
	args := m.Called(ctx, name, versionTag)
	return args.Error(0)
}

func (m *MockSecretUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*secretsDomain.Secret), args.Error(1)
}
