package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	connectionsDomain "github.com/locksetdev/vault/internal/connections/domain"
	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
	cryptoService "github.com/locksetdev/vault/internal/crypto/service"
	cryptoUseCase "github.com/locksetdev/vault/internal/crypto/usecase"
	"github.com/locksetdev/vault/internal/database"
	apperrors "github.com/locksetdev/vault/internal/errors"
)

// connectionUseCase implements the ConnectionUseCase interface.
type connectionUseCase struct {
	txManager    database.TxManager
	connRepo     ConnectionRepository
	dekUseCase   cryptoUseCase.DekUseCase
	envelope     cryptoService.Envelope
	dekAlgorithm cryptoDomain.Algorithm
}

// Create registers a connection with its configuration sealed under the
// active DEK.
func (c *connectionUseCase) Create(
	ctx context.Context,
	input *CreateConnectionInput,
) (*connectionsDomain.VaultConnection, error) {
	dek, key, err := c.dekUseCase.Active(ctx, c.dekAlgorithm)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	sealed, err := c.envelope.Seal(input.Config, key, dek.Algorithm)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	conn := &connectionsDomain.VaultConnection{
		ID:         uuid.Must(uuid.NewV7()),
		PublicID:   input.PublicID,
		Name:       input.Name,
		Provider:   input.Provider,
		Ciphertext: sealed.Ciphertext,
		Nonce:      sealed.Nonce,
		Digest:     sealed.Digest,
		DekID:      dek.ID,
		TTL:        input.TTL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := c.connRepo.Create(ctx, conn); err != nil {
		return nil, err
	}

	return conn, nil
}

// Get retrieves and decrypts a connection configuration.
func (c *connectionUseCase) Get(
	ctx context.Context,
	publicID string,
) (*connectionsDomain.VaultConnection, error) {
	conn, err := c.connRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	// TTL expiry is logical deletion: the row persists but behaves as absent.
	if conn.Expired(time.Now().UTC()) {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "vault connection ttl elapsed")
	}

	dek, key, err := c.dekUseCase.Unwrap(ctx, conn.DekID)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	config, err := c.envelope.Open(&cryptoService.SealedPayload{
		Ciphertext: conn.Ciphertext,
		Nonce:      conn.Nonce,
		Digest:     conn.Digest,
	}, key, dek.Algorithm)
	if err != nil {
		return nil, err
	}

	conn.Config = config
	return conn, nil
}

// Update re-seals the configuration under the then-active DEK inside a
// row-locked transaction and resets the TTL clock.
func (c *connectionUseCase) Update(
	ctx context.Context,
	publicID string,
	input *UpdateConnectionInput,
) (*connectionsDomain.VaultConnection, error) {
	dek, key, err := c.dekUseCase.Active(ctx, c.dekAlgorithm)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	sealed, err := c.envelope.Seal(input.Config, key, dek.Algorithm)
	if err != nil {
		return nil, err
	}

	var conn *connectionsDomain.VaultConnection
	err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		conn, err = c.connRepo.GetByPublicIDForUpdate(txCtx, publicID)
		if err != nil {
			return err
		}

		conn.Name = input.Name
		conn.Provider = input.Provider
		conn.Ciphertext = sealed.Ciphertext
		conn.Nonce = sealed.Nonce
		conn.Digest = sealed.Digest
		conn.DekID = dek.ID
		conn.TTL = input.TTL
		conn.UpdatedAt = time.Now().UTC()

		return c.connRepo.Update(txCtx, conn)
	})
	if err != nil {
		return nil, err
	}

	return conn, nil
}

// Delete removes a connection by public ID.
func (c *connectionUseCase) Delete(ctx context.Context, publicID string) error {
	return c.connRepo.Delete(ctx, publicID)
}

// NewConnectionUseCase creates a new connection use case instance with the
// provided dependencies.
func NewConnectionUseCase(
	txManager database.TxManager,
	connRepo ConnectionRepository,
	dekUseCase cryptoUseCase.DekUseCase,
	envelope cryptoService.Envelope,
	dekAlgorithm cryptoDomain.Algorithm,
) ConnectionUseCase {
	return &connectionUseCase{
		txManager:    txManager,
		connRepo:     connRepo,
		dekUseCase:   dekUseCase,
		envelope:     envelope,
		dekAlgorithm: dekAlgorithm,
	}
}
