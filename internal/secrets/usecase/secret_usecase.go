package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
	cryptoService "github.com/locksetdev/vault/internal/crypto/service"
	cryptoUseCase "github.com/locksetdev/vault/internal/crypto/usecase"
	"github.com/locksetdev/vault/internal/database"
	apperrors "github.com/locksetdev/vault/internal/errors"
	secretsDomain "github.com/locksetdev/vault/internal/secrets/domain"
)

// secretUseCase implements the SecretUseCase interface for managing secrets.
type secretUseCase struct {
	txManager    database.TxManager
	secretRepo   SecretRepository
	dekUseCase   cryptoUseCase.DekUseCase
	envelope     cryptoService.Envelope
	dekAlgorithm cryptoDomain.Algorithm
}

// Create stores a new secret together with its first version. The secret row
// and version row are written in one transaction, with the current pointer
// already naming the first version.
func (s *secretUseCase) Create(
	ctx context.Context,
	input *CreateSecretInput,
) (*secretsDomain.Secret, *secretsDomain.SecretVersion, error) {
	tag := input.VersionTag
	if tag == "" {
		tag = secretsDomain.DefaultVersionTag
	}

	dek, key, err := s.dekUseCase.Active(ctx, s.dekAlgorithm)
	if err != nil {
		return nil, nil, err
	}
	defer cryptoDomain.Zero(key)

	sealed, err := s.envelope.Seal(input.Value, key, dek.Algorithm)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	secret := &secretsDomain.Secret{
		ID:                uuid.Must(uuid.NewV7()),
		Name:              input.Name,
		CurrentVersion:    &tag,
		VaultConnectionID: input.VaultConnectionID,
		ExpireAt:          input.ExpireAt,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	version := &secretsDomain.SecretVersion{
		ID:         uuid.Must(uuid.NewV7()),
		SecretID:   secret.ID,
		VersionTag: tag,
		Ciphertext: sealed.Ciphertext,
		Nonce:      sealed.Nonce,
		Digest:     sealed.Digest,
		DekID:      dek.ID,
		ExpireAt:   input.VersionExpireAt,
		CreatedAt:  now,
	}

	err = s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.secretRepo.Create(txCtx, secret); err != nil {
			return err
		}
		return s.secretRepo.CreateVersion(txCtx, version)
	})
	if err != nil {
		return nil, nil, err
	}

	return secret, version, nil
}

// CreateVersion adds a version to an existing secret. The secret row is
// locked for the duration of the transaction, so concurrent writers for the
// same secret serialize and the pointer swap never loses an update.
func (s *secretUseCase) CreateVersion(
	ctx context.Context,
	name string,
	input *CreateVersionInput,
) (*secretsDomain.SecretVersion, error) {
	dek, key, err := s.dekUseCase.Active(ctx, s.dekAlgorithm)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	sealed, err := s.envelope.Seal(input.Value, key, dek.Algorithm)
	if err != nil {
		return nil, err
	}

	var version *secretsDomain.SecretVersion
	err = s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		secret, err := s.secretRepo.GetByNameForUpdate(txCtx, name)
		if err != nil {
			return err
		}

		// Expiry is logical deletion: the row persists but behaves as absent.
		if secret.Expired(time.Now().UTC()) {
			return apperrors.Wrap(apperrors.ErrNotFound, "secret has expired")
		}

		version = &secretsDomain.SecretVersion{
			ID:         uuid.Must(uuid.NewV7()),
			SecretID:   secret.ID,
			VersionTag: input.VersionTag,
			Ciphertext: sealed.Ciphertext,
			Nonce:      sealed.Nonce,
			Digest:     sealed.Digest,
			DekID:      dek.ID,
			ExpireAt:   input.ExpireAt,
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.secretRepo.CreateVersion(txCtx, version); err != nil {
			return err
		}

		// Pointer swap: the tag current named before this write becomes previous.
		return s.secretRepo.UpdateVersionPointers(
			txCtx,
			secret.ID,
			&version.VersionTag,
			secret.CurrentVersion,
		)
	})
	if err != nil {
		return nil, err
	}

	return version, nil
}

// GetCurrent retrieves and decrypts the version the current pointer names.
func (s *secretUseCase) GetCurrent(
	ctx context.Context,
	name string,
) (*secretsDomain.Secret, *secretsDomain.SecretVersion, error) {
	secret, err := s.secretRepo.GetByName(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	if secret.Expired(time.Now().UTC()) {
		return nil, nil, apperrors.Wrap(apperrors.ErrNotFound, "secret has expired")
	}
	if secret.CurrentVersion == nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrNotFound, "secret has no current version")
	}

	version, err := s.readVersion(ctx, secret, *secret.CurrentVersion)
	if err != nil {
		return nil, nil, err
	}

	return secret, version, nil
}

// GetVersion retrieves and decrypts a specific version by tag.
func (s *secretUseCase) GetVersion(
	ctx context.Context,
	name, versionTag string,
) (*secretsDomain.Secret, *secretsDomain.SecretVersion, error) {
	secret, err := s.secretRepo.GetByName(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	if secret.Expired(time.Now().UTC()) {
		return nil, nil, apperrors.Wrap(apperrors.ErrNotFound, "secret has expired")
	}

	version, err := s.readVersion(ctx, secret, versionTag)
	if err != nil {
		return nil, nil, err
	}

	return secret, version, nil
}

// readVersion loads, gates and decrypts a single version.
func (s *secretUseCase) readVersion(
	ctx context.Context,
	secret *secretsDomain.Secret,
	versionTag string,
) (*secretsDomain.SecretVersion, error) {
	version, err := s.secretRepo.GetVersion(ctx, secret.ID, versionTag)
	if err != nil {
		return nil, err
	}

	if !version.Readable(time.Now().UTC()) {
		if version.Deleted {
			return nil, apperrors.Wrap(apperrors.ErrGone, "secret version has been deleted")
		}
		return nil, apperrors.Wrap(apperrors.ErrGone, "secret version has expired")
	}

	dek, key, err := s.dekUseCase.Unwrap(ctx, version.DekID)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	plaintext, err := s.envelope.Open(&cryptoService.SealedPayload{
		Ciphertext: version.Ciphertext,
		Nonce:      version.Nonce,
		Digest:     version.Digest,
	}, key, dek.Algorithm)
	if err != nil {
		return nil, err
	}

	version.Plaintext = plaintext
	return version, nil
}

// Delete removes a secret; its versions go with it via cascade.
func (s *secretUseCase) Delete(ctx context.Context, name string) error {
	secret, err := s.secretRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}

	return s.secretRepo.Delete(ctx, secret.ID)
}

// SoftDeleteVersion marks a single version as deleted. The version pointers
// are left untouched: a soft-deleted current version surfaces as gone on read.
func (s *secretUseCase) SoftDeleteVersion(ctx context.Context, name, versionTag string) error {
	secret, err := s.secretRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}

	version, err := s.secretRepo.GetVersion(ctx, secret.ID, versionTag)
	if err != nil {
		return err
	}

	if version.Deleted {
		return apperrors.Wrap(apperrors.ErrGone, "secret version already deleted")
	}

	return s.secretRepo.SoftDeleteVersion(ctx, version.ID, time.Now().UTC())
}

// List retrieves secret metadata ordered by name with pagination.
func (s *secretUseCase) List(ctx context.Context, offset, limit int) ([]*secretsDomain.Secret, error) {
	return s.secretRepo.List(ctx, offset, limit)
}

// NewSecretUseCase creates a new secret use case instance with the provided dependencies.
func NewSecretUseCase(
	txManager database.TxManager,
	secretRepo SecretRepository,
	dekUseCase cryptoUseCase.DekUseCase,
	envelope cryptoService.Envelope,
	dekAlgorithm cryptoDomain.Algorithm,
) SecretUseCase {
	return &secretUseCase{
		txManager:    txManager,
		secretRepo:   secretRepo,
		dekUseCase:   dekUseCase,
		envelope:     envelope,
		dekAlgorithm: dekAlgorithm,
	}
}
