package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
	"github.com/locksetdev/vault/internal/crypto/usecase/mocks"
	apperrors "github.com/locksetdev/vault/internal/errors"
)

func newTestDekUseCase(
	kekRepo *mocks.MockKekRepository,
	dekRepo *mocks.MockDekRepository,
	wrapper *mocks.MockKeyWrapper,
) DekUseCase {
	return NewDekUseCase(kekRepo, dekRepo, wrapper, NewDekCache(time.Minute), 10*time.Second)
}

func testKek() *cryptoDomain.Kek {
	return &cryptoDomain.Kek{
		ID:        uuid.Must(uuid.NewV7()),
		KmsKey:    "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4=",
		CreatedAt: time.Now().UTC(),
	}
}

func testDek(kekID uuid.UUID) *cryptoDomain.Dek {
	id := uuid.Must(uuid.NewV7())
	return &cryptoDomain.Dek{
		ID:           id,
		KeyID:        "dek-" + id.String(),
		KekID:        kekID,
		EncryptedKey: []byte("wrapped-key-material"),
		Algorithm:    cryptoDomain.AESGCM,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestDekUseCase_Rotate(t *testing.T) {
	ctx := context.Background()

	t.Run("generates a dek under the latest kek", func(t *testing.T) {
		kek := testKek()
		plaintext := make([]byte, 32)
		wrapped := []byte("wrapped-by-kms")

		kekRepo := new(mocks.MockKekRepository)
		kekRepo.On("GetLatest", ctx).Return(kek, nil)

		dekRepo := new(mocks.MockDekRepository)
		dekRepo.On("Create", ctx, mock.AnythingOfType("*domain.Dek")).Return(nil)

		wrapper := new(mocks.MockKeyWrapper)
		wrapper.On("GenerateDataKey", mock.Anything, kek.KmsKey).Return(plaintext, wrapped, nil)

		uc := newTestDekUseCase(kekRepo, dekRepo, wrapper)

		dek, err := uc.Rotate(ctx, cryptoDomain.AESGCM)
		require.NoError(t, err)
		assert.Equal(t, kek.ID, dek.KekID)
		assert.Equal(t, wrapped, dek.EncryptedKey)
		assert.Equal(t, cryptoDomain.AESGCM, dek.Algorithm)
		assert.Contains(t, dek.KeyID, "dek-")

		kekRepo.AssertExpectations(t)
		dekRepo.AssertExpectations(t)
		wrapper.AssertExpectations(t)
	})

	t.Run("fails without a registered kek", func(t *testing.T) {
		kekRepo := new(mocks.MockKekRepository)
		kekRepo.On("GetLatest", ctx).Return(nil, cryptoDomain.ErrKekNotFound)

		uc := newTestDekUseCase(kekRepo, new(mocks.MockDekRepository), new(mocks.MockKeyWrapper))

		_, err := uc.Rotate(ctx, cryptoDomain.AESGCM)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("rejects unsupported algorithm", func(t *testing.T) {
		uc := newTestDekUseCase(
			new(mocks.MockKekRepository),
			new(mocks.MockDekRepository),
			new(mocks.MockKeyWrapper),
		)

		_, err := uc.Rotate(ctx, cryptoDomain.Algorithm("rot13"))
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
	})

	t.Run("wraps kms failures as encryption failure", func(t *testing.T) {
		kek := testKek()
		kekRepo := new(mocks.MockKekRepository)
		kekRepo.On("GetLatest", ctx).Return(kek, nil)

		wrapper := new(mocks.MockKeyWrapper)
		wrapper.On("GenerateDataKey", mock.Anything, kek.KmsKey).
			Return(nil, nil, assert.AnError)

		uc := newTestDekUseCase(kekRepo, new(mocks.MockDekRepository), wrapper)

		_, err := uc.Rotate(ctx, cryptoDomain.ChaCha20)
		assert.ErrorIs(t, err, apperrors.ErrEncryptionFailure)
	})
}

func TestDekUseCase_Unwrap(t *testing.T) {
	ctx := context.Background()

	t.Run("unwraps through the kms on cache miss", func(t *testing.T) {
		kek := testKek()
		dek := testDek(kek.ID)
		key := make([]byte, 32)
		for i := range key {
			key[i] = byte(i)
		}

		kekRepo := new(mocks.MockKekRepository)
		kekRepo.On("Get", ctx, kek.ID).Return(kek, nil)

		dekRepo := new(mocks.MockDekRepository)
		dekRepo.On("Get", ctx, dek.ID).Return(dek, nil)

		wrapper := new(mocks.MockKeyWrapper)
		wrapper.On("Unwrap", mock.Anything, kek.KmsKey, dek.EncryptedKey).Return(key, nil)

		uc := newTestDekUseCase(kekRepo, dekRepo, wrapper)

		got, gotKey, err := uc.Unwrap(ctx, dek.ID)
		require.NoError(t, err)
		assert.Equal(t, dek, got)
		assert.Equal(t, key, gotKey)

		wrapper.AssertExpectations(t)
	})

	t.Run("serves the plaintext from cache on repeat calls", func(t *testing.T) {
		kek := testKek()
		dek := testDek(kek.ID)
		key := make([]byte, 32)

		kekRepo := new(mocks.MockKekRepository)
		kekRepo.On("Get", ctx, kek.ID).Return(kek, nil)

		dekRepo := new(mocks.MockDekRepository)
		dekRepo.On("Get", ctx, dek.ID).Return(dek, nil)

		wrapper := new(mocks.MockKeyWrapper)
		wrapper.On("Unwrap", mock.Anything, kek.KmsKey, dek.EncryptedKey).Return(key, nil).Once()

		uc := newTestDekUseCase(kekRepo, dekRepo, wrapper)

		_, _, err := uc.Unwrap(ctx, dek.ID)
		require.NoError(t, err)

		// Second call must not hit the KMS again
		_, gotKey, err := uc.Unwrap(ctx, dek.ID)
		require.NoError(t, err)
		assert.Equal(t, key, gotKey)

		wrapper.AssertExpectations(t)
	})

	t.Run("returns not found for unknown dek", func(t *testing.T) {
		dekID := uuid.Must(uuid.NewV7())
		dekRepo := new(mocks.MockDekRepository)
		dekRepo.On("Get", ctx, dekID).Return(nil, cryptoDomain.ErrDekNotFound)

		uc := newTestDekUseCase(new(mocks.MockKekRepository), dekRepo, new(mocks.MockKeyWrapper))

		_, _, err := uc.Unwrap(ctx, dekID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("wraps kms unwrap failures as encryption failure", func(t *testing.T) {
		kek := testKek()
		dek := testDek(kek.ID)

		kekRepo := new(mocks.MockKekRepository)
		kekRepo.On("Get", ctx, kek.ID).Return(kek, nil)

		dekRepo := new(mocks.MockDekRepository)
		dekRepo.On("Get", ctx, dek.ID).Return(dek, nil)

		wrapper := new(mocks.MockKeyWrapper)
		wrapper.On("Unwrap", mock.Anything, kek.KmsKey, dek.EncryptedKey).
			Return(nil, assert.AnError)

		uc := newTestDekUseCase(kekRepo, dekRepo, wrapper)

		_, _, err := uc.Unwrap(ctx, dek.ID)
		assert.ErrorIs(t, err, apperrors.ErrEncryptionFailure)
	})
}

func TestDekUseCase_Active(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the latest dek with its plaintext", func(t *testing.T) {
		kek := testKek()
		dek := testDek(kek.ID)
		key := make([]byte, 32)

		kekRepo := new(mocks.MockKekRepository)
		kekRepo.On("Get", ctx, kek.ID).Return(kek, nil)

		dekRepo := new(mocks.MockDekRepository)
		dekRepo.On("GetLatest", ctx).Return(dek, nil)
		dekRepo.On("Get", ctx, dek.ID).Return(dek, nil)

		wrapper := new(mocks.MockKeyWrapper)
		wrapper.On("Unwrap", mock.Anything, kek.KmsKey, dek.EncryptedKey).Return(key, nil)

		uc := newTestDekUseCase(kekRepo, dekRepo, wrapper)

		got, gotKey, err := uc.Active(ctx, cryptoDomain.AESGCM)
		require.NoError(t, err)
		assert.Equal(t, dek.ID, got.ID)
		assert.Equal(t, key, gotKey)
	})

	t.Run("bootstraps the first dek when none exists", func(t *testing.T) {
		kek := testKek()
		plaintext := make([]byte, 32)
		wrapped := []byte("wrapped")

		kekRepo := new(mocks.MockKekRepository)
		kekRepo.On("GetLatest", ctx).Return(kek, nil)

		dekRepo := new(mocks.MockDekRepository)
		dekRepo.On("GetLatest", ctx).Return(nil, cryptoDomain.ErrDekNotFound)
		dekRepo.On("Create", ctx, mock.AnythingOfType("*domain.Dek")).Return(nil)

		wrapper := new(mocks.MockKeyWrapper)
		wrapper.On("GenerateDataKey", mock.Anything, kek.KmsKey).Return(plaintext, wrapped, nil)

		uc := newTestDekUseCase(kekRepo, dekRepo, wrapper)

		dek, key, err := uc.Active(ctx, cryptoDomain.AESGCM)
		require.NoError(t, err)
		assert.Equal(t, kek.ID, dek.KekID)
		assert.Len(t, key, 32)

		// Plaintext came from the cache seeded by Rotate, no Unwrap call
		wrapper.AssertNotCalled(t, "Unwrap", mock.Anything, mock.Anything, mock.Anything)
	})
}
