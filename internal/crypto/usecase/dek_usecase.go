package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
	cryptoService "github.com/locksetdev/vault/internal/crypto/service"
	apperrors "github.com/locksetdev/vault/internal/errors"
)

type dekUseCase struct {
	kekRepo    KekRepository
	dekRepo    DekRepository
	keyWrapper cryptoService.KeyWrapper
	cache      *DekCache
	kmsTimeout time.Duration
}

// Active returns the active DEK (most recently created) and its plaintext
// key. When the store holds no DEK yet, the first one is generated under
// the latest KEK, so first use bootstraps the key hierarchy.
//
// Concurrent first calls may race to create the initial DEK; the key_id
// uniqueness constraint is not involved here, so both inserts succeed and
// the newer row simply becomes the active key. Both keys remain usable
// for decryption.
func (d *dekUseCase) Active(
	ctx context.Context,
	alg cryptoDomain.Algorithm,
) (*cryptoDomain.Dek, []byte, error) {
	dek, err := d.dekRepo.GetLatest(ctx)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			dek, err = d.Rotate(ctx, alg)
			if err != nil {
				return nil, nil, err
			}
		} else {
			return nil, nil, err
		}
	}

	// Rotate seeds the cache, so the bootstrap path resolves without a KMS call.
	if key, ok := d.cache.Get(dek.ID); ok {
		return dek, key, nil
	}

	_, key, err := d.Unwrap(ctx, dek.ID)
	if err != nil {
		return nil, nil, err
	}

	return dek, key, nil
}

// Unwrap returns the identified DEK and its plaintext key. The plaintext is
// served from the cache when fresh; otherwise the KMS unwraps it and the
// result is cached. The caller owns the returned key and must zero it.
func (d *dekUseCase) Unwrap(
	ctx context.Context,
	dekID uuid.UUID,
) (*cryptoDomain.Dek, []byte, error) {
	dek, err := d.dekRepo.Get(ctx, dekID)
	if err != nil {
		return nil, nil, err
	}

	if key, ok := d.cache.Get(dek.ID); ok {
		return dek, key, nil
	}

	kek, err := d.kekRepo.Get(ctx, dek.KekID)
	if err != nil {
		return nil, nil, err
	}

	kmsCtx, cancel := context.WithTimeout(ctx, d.kmsTimeout)
	defer cancel()

	key, err := d.keyWrapper.Unwrap(kmsCtx, kek.KmsKey, dek.EncryptedKey)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrEncryptionFailure, err.Error())
	}

	d.cache.Set(dek.ID, key)
	return dek, key, nil
}

// Rotate generates a new DEK under the latest KEK. The new row's UUIDv7 ID
// makes it the active key for subsequent writes; existing DEKs stay valid
// for decrypting data written under them.
func (d *dekUseCase) Rotate(
	ctx context.Context,
	alg cryptoDomain.Algorithm,
) (*cryptoDomain.Dek, error) {
	switch alg {
	case cryptoDomain.AESGCM, cryptoDomain.ChaCha20:
	default:
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}

	kek, err := d.kekRepo.GetLatest(ctx)
	if err != nil {
		return nil, err
	}

	kmsCtx, cancel := context.WithTimeout(ctx, d.kmsTimeout)
	defer cancel()

	plaintext, wrapped, err := d.keyWrapper.GenerateDataKey(kmsCtx, kek.KmsKey)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrEncryptionFailure, err.Error())
	}

	id := uuid.Must(uuid.NewV7())
	dek := &cryptoDomain.Dek{
		ID:           id,
		KeyID:        "dek-" + id.String(),
		KekID:        kek.ID,
		EncryptedKey: wrapped,
		Algorithm:    alg,
		CreatedAt:    time.Now().UTC(),
	}

	if err := d.dekRepo.Create(ctx, dek); err != nil {
		cryptoDomain.Zero(plaintext)
		return nil, err
	}

	d.cache.Set(dek.ID, plaintext)
	cryptoDomain.Zero(plaintext)

	return dek, nil
}

// NewDekUseCase creates a new DekUseCase instance.
func NewDekUseCase(
	kekRepo KekRepository,
	dekRepo DekRepository,
	keyWrapper cryptoService.KeyWrapper,
	cache *DekCache,
	kmsTimeout time.Duration,
) DekUseCase {
	return &dekUseCase{
		kekRepo:    kekRepo,
		dekRepo:    dekRepo,
		keyWrapper: keyWrapper,
		cache:      cache,
		kmsTimeout: kmsTimeout,
	}
}
