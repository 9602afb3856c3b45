package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockKeyWrapper is a mock implementation of service.KeyWrapper for testing.
type MockKeyWrapper struct {
	mock.Mock
}

// GenerateDataKey mocks the GenerateDataKey method of KeyWrapper.
func (m *MockKeyWrapper) GenerateDataKey(
	ctx context.Context,
	kmsKey string,
) (plaintext, wrapped []byte, err error) {
	args := m.Called(ctx, kmsKey)
	var p, w []byte
	if args.Get(0) != nil {
		p = args.Get(0).([]byte)
	}
	if args.Get(1) != nil {
		w = args.Get(1).([]byte)
	}
	return p, w, args.Error(2)
}

// Unwrap mocks the Unwrap method of KeyWrapper.
func (m *MockKeyWrapper) Unwrap(ctx context.Context, kmsKey string, wrapped []byte) ([]byte, error) {
	args := m.Called(ctx, kmsKey, wrapped)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Close mocks the Close method of KeyWrapper.
func (m *MockKeyWrapper) Close() error {
	args := m.Called()
	return args.Error(0)
}
