// Package mocks contains mock implementations of secrets interfaces for testing.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/locksetdev/vault/internal/secrets/domain"
)

// MockSecretRepository is a mock implementation of the SecretRepository interface.
type MockSecretRepository struct {
	mock.Mock
}

func (m *MockSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	args := m.Called(ctx, secret)
	return args.Error(0)
}

func (m *MockSecretRepository) GetByName(
	ctx context.Context,
	name string,
) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

func (m *MockSecretRepository) GetByNameForUpdate(
	ctx context.Context,
	name string,
) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

func (m *MockSecretRepository) UpdateVersionPointers(
	ctx context.Context,
	secretID uuid.UUID,
	current, previous *string,
) error {
	args := m.Called(ctx, secretID, current, previous)
	return args.Error(0)
}

func (m *MockSecretRepository) Delete(ctx context.Context, secretID uuid.UUID) error {
	args := m.Called(ctx, secretID)
	return args.Error(0)
}

func (m *MockSecretRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*secretsDomain.Secret), args.Error(1)
}

func (m *MockSecretRepository) CreateVersion(
	ctx context.Context,
	version *secretsDomain.SecretVersion,
) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

func (m *MockSecretRepository) GetVersion(
	ctx context.Context,
	secretID uuid.UUID,
	versionTag string,
) (*secretsDomain.SecretVersion, error) {
	args := m.Called(ctx, secretID, versionTag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.SecretVersion), args.Error(1)
}

func (m *MockSecretRepository) SoftDeleteVersion(
	ctx context.Context,
	versionID uuid.UUID,
	deletedAt time.Time,
) error {
	args := m.Called(ctx, versionID, deletedAt)
	return args.Error(0)
}
