package usecase_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	connectionsDomain "github.com/locksetdev/vault/internal/connections/domain"
	"github.com/locksetdev/vault/internal/connections/usecase"
	connectionsUsecaseMocks "github.com/locksetdev/vault/internal/connections/usecase/mocks"
	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
	cryptoService "github.com/locksetdev/vault/internal/crypto/service"
	cryptoUsecaseMocks "github.com/locksetdev/vault/internal/crypto/usecase/mocks"
	databaseMocks "github.com/locksetdev/vault/internal/database/mocks"
	apperrors "github.com/locksetdev/vault/internal/errors"
)

func testDekKey() []byte {
	return bytes.Repeat([]byte{0x24}, cryptoDomain.KeySize)
}

func testDek() *cryptoDomain.Dek {
	id := uuid.Must(uuid.NewV7())
	return &cryptoDomain.Dek{
		ID:           id,
		KeyID:        "dek-" + id.String(),
		KekID:        uuid.Must(uuid.NewV7()),
		EncryptedKey: []byte("wrapped-key"),
		Algorithm:    cryptoDomain.AESGCM,
		CreatedAt:    time.Now().UTC(),
	}
}

type connectionUseCaseFixture struct {
	connRepo   *connectionsUsecaseMocks.MockConnectionRepository
	dekUseCase *cryptoUsecaseMocks.MockDekUseCase
	useCase    usecase.ConnectionUseCase
}

func newConnectionUseCaseFixture() *connectionUseCaseFixture {
	connRepo := &connectionsUsecaseMocks.MockConnectionRepository{}
	dekUseCase := &cryptoUsecaseMocks.MockDekUseCase{}
	envelope := cryptoService.NewEnvelope(cryptoService.NewAEADManager())

	return &connectionUseCaseFixture{
		connRepo:   connRepo,
		dekUseCase: dekUseCase,
		useCase: usecase.NewConnectionUseCase(
			&databaseMocks.PassthroughTxManager{},
			connRepo,
			dekUseCase,
			envelope,
			cryptoDomain.AESGCM,
		),
	}
}

// sealedConnection produces a stored connection the way Create would have
// written it.
func sealedConnection(t *testing.T, dek *cryptoDomain.Dek, publicID string, config []byte, ttl int64) *connectionsDomain.VaultConnection {
	t.Helper()
	envelope := cryptoService.NewEnvelope(cryptoService.NewAEADManager())
	sealed, err := envelope.Seal(config, testDekKey(), dek.Algorithm)
	require.NoError(t, err)

	now := time.Now().UTC()
	return &connectionsDomain.VaultConnection{
		ID:         uuid.Must(uuid.NewV7()),
		PublicID:   publicID,
		Name:       "production vault",
		Provider:   "hashicorp",
		Ciphertext: sealed.Ciphertext,
		Nonce:      sealed.Nonce,
		Digest:     sealed.Digest,
		DekID:      dek.ID,
		TTL:        ttl,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestConnectionUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("seals the config under the active dek", func(t *testing.T) {
		f := newConnectionUseCaseFixture()
		dek := testDek()

		f.dekUseCase.On("Active", ctx, cryptoDomain.AESGCM).
			Return(dek, testDekKey(), nil).Once()
		f.connRepo.On("Create", ctx, mock.AnythingOfType("*domain.VaultConnection")).
			Return(nil).Once()

		conn, err := f.useCase.Create(ctx, &usecase.CreateConnectionInput{
			PublicID: "vlt_prod_primary_01",
			Name:     "production vault",
			Provider: "hashicorp",
			Config:   []byte(`{"address":"https://vault.internal:8200"}`),
			TTL:      3600,
		})

		require.NoError(t, err)
		assert.Equal(t, "vlt_prod_primary_01", conn.PublicID)
		assert.Equal(t, dek.ID, conn.DekID)
		assert.NotEmpty(t, conn.Ciphertext)
		assert.NotContains(t, string(conn.Ciphertext), "vault.internal")
		assert.Len(t, conn.Digest, 64)
		f.connRepo.AssertExpectations(t)
	})

	t.Run("duplicate public id surfaces conflict", func(t *testing.T) {
		f := newConnectionUseCaseFixture()

		f.dekUseCase.On("Active", ctx, cryptoDomain.AESGCM).
			Return(testDek(), testDekKey(), nil).Once()
		f.connRepo.On("Create", ctx, mock.Anything).
			Return(apperrors.ErrConflict).Once()

		_, err := f.useCase.Create(ctx, &usecase.CreateConnectionInput{
			PublicID: "vlt_prod_primary_01",
			Config:   []byte("{}"),
		})

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestConnectionUseCase_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("decrypts the config", func(t *testing.T) {
		f := newConnectionUseCaseFixture()
		dek := testDek()

		config := []byte(`{"address":"https://vault.internal:8200"}`)
		conn := sealedConnection(t, dek, "vlt_prod_primary_01", config, 3600)

		f.connRepo.On("GetByPublicID", ctx, "vlt_prod_primary_01").Return(conn, nil).Once()
		f.dekUseCase.On("Unwrap", ctx, dek.ID).Return(dek, testDekKey(), nil).Once()

		got, err := f.useCase.Get(ctx, "vlt_prod_primary_01")

		require.NoError(t, err)
		assert.Equal(t, config, got.Config)
	})

	t.Run("elapsed ttl behaves as absent", func(t *testing.T) {
		f := newConnectionUseCaseFixture()
		dek := testDek()

		conn := sealedConnection(t, dek, "vlt_prod_stale_01", []byte("{}"), 60)
		conn.UpdatedAt = time.Now().UTC().Add(-2 * time.Minute)

		f.connRepo.On("GetByPublicID", ctx, "vlt_prod_stale_01").Return(conn, nil).Once()

		_, err := f.useCase.Get(ctx, "vlt_prod_stale_01")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		f.dekUseCase.AssertNotCalled(t, "Unwrap", mock.Anything, mock.Anything)
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		f := newConnectionUseCaseFixture()
		dek := testDek()

		conn := sealedConnection(t, dek, "vlt_prod_pinned_01", []byte("{}"), 0)
		conn.UpdatedAt = time.Now().UTC().Add(-365 * 24 * time.Hour)

		f.connRepo.On("GetByPublicID", ctx, "vlt_prod_pinned_01").Return(conn, nil).Once()
		f.dekUseCase.On("Unwrap", ctx, dek.ID).Return(dek, testDekKey(), nil).Once()

		got, err := f.useCase.Get(ctx, "vlt_prod_pinned_01")

		require.NoError(t, err)
		assert.Equal(t, []byte("{}"), got.Config)
	})

	t.Run("corrupted digest fails the integrity check", func(t *testing.T) {
		f := newConnectionUseCaseFixture()
		dek := testDek()

		conn := sealedConnection(t, dek, "vlt_prod_primary_01", []byte("{}"), 0)
		conn.Digest = "0f1e2d3c4b5a69788796a5b4c3d2e1f00f1e2d3c4b5a69788796a5b4c3d2e1f0"

		f.connRepo.On("GetByPublicID", ctx, "vlt_prod_primary_01").Return(conn, nil).Once()
		f.dekUseCase.On("Unwrap", ctx, dek.ID).Return(dek, testDekKey(), nil).Once()

		_, err := f.useCase.Get(ctx, "vlt_prod_primary_01")
		assert.ErrorIs(t, err, apperrors.ErrIntegrityCheck)
	})
}

func TestConnectionUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("re-seals under the active dek and resets the ttl clock", func(t *testing.T) {
		f := newConnectionUseCaseFixture()
		oldDek := testDek()
		newDek := testDek()

		conn := sealedConnection(t, oldDek, "vlt_prod_primary_01", []byte("old"), 60)
		staleUpdatedAt := time.Now().UTC().Add(-30 * time.Second)
		conn.UpdatedAt = staleUpdatedAt

		f.dekUseCase.On("Active", ctx, cryptoDomain.AESGCM).
			Return(newDek, testDekKey(), nil).Once()
		f.connRepo.On("GetByPublicIDForUpdate", mock.Anything, "vlt_prod_primary_01").
			Return(conn, nil).Once()
		f.connRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *connectionsDomain.VaultConnection) bool {
			return c.DekID == newDek.ID && c.TTL == 120 && c.UpdatedAt.After(staleUpdatedAt)
		})).Return(nil).Once()

		got, err := f.useCase.Update(ctx, "vlt_prod_primary_01", &usecase.UpdateConnectionInput{
			Name:     "production vault",
			Provider: "hashicorp",
			Config:   []byte("new"),
			TTL:      120,
		})

		require.NoError(t, err)
		assert.Equal(t, newDek.ID, got.DekID)
		f.connRepo.AssertExpectations(t)
	})

	t.Run("unknown public id", func(t *testing.T) {
		f := newConnectionUseCaseFixture()

		f.dekUseCase.On("Active", ctx, cryptoDomain.AESGCM).
			Return(testDek(), testDekKey(), nil).Once()
		f.connRepo.On("GetByPublicIDForUpdate", mock.Anything, "vlt_missing_00001").
			Return(nil, apperrors.ErrNotFound).Once()

		_, err := f.useCase.Update(ctx, "vlt_missing_00001", &usecase.UpdateConnectionInput{
			Config: []byte("{}"),
		})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		f.connRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestConnectionUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	f := newConnectionUseCaseFixture()
	f.connRepo.On("Delete", ctx, "vlt_prod_primary_01").Return(nil).Once()

	assert.NoError(t, f.useCase.Delete(ctx, "vlt_prod_primary_01"))
	f.connRepo.AssertExpectations(t)
}
