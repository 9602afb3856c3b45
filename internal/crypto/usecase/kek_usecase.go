package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
	"github.com/locksetdev/vault/internal/errors"
)

type kekUseCase struct {
	kekRepo KekRepository
}

// Register adds a new KEK referencing the given KMS key URI. The URI must
// carry a scheme (e.g. "awskms://..."); the key material behind it is never
// fetched or stored.
func (k *kekUseCase) Register(ctx context.Context, kmsKey string) (*cryptoDomain.Kek, error) {
	kmsKey = strings.TrimSpace(kmsKey)
	if kmsKey == "" || !strings.Contains(kmsKey, "://") {
		return nil, errors.Wrap(errors.ErrInvalidInput, "kms key must be a valid URI")
	}

	kek := &cryptoDomain.Kek{
		ID:        uuid.Must(uuid.NewV7()),
		KmsKey:    kmsKey,
		CreatedAt: time.Now().UTC(),
	}

	if err := k.kekRepo.Create(ctx, kek); err != nil {
		return nil, err
	}

	return kek, nil
}

// Get retrieves a KEK by ID.
func (k *kekUseCase) Get(ctx context.Context, kekID uuid.UUID) (*cryptoDomain.Kek, error) {
	return k.kekRepo.Get(ctx, kekID)
}

// List retrieves all registered KEKs, newest first.
func (k *kekUseCase) List(ctx context.Context) ([]*cryptoDomain.Kek, error) {
	return k.kekRepo.List(ctx)
}

// Remove deletes a KEK. The restrict-on-delete constraint surfaces as
// ErrReferentialIntegrity when DEKs still reference it, keeping wrapped
// key material recoverable.
func (k *kekUseCase) Remove(ctx context.Context, kekID uuid.UUID) error {
	return k.kekRepo.Delete(ctx, kekID)
}

// NewKekUseCase creates a new KekUseCase instance.
func NewKekUseCase(kekRepo KekRepository) KekUseCase {
	return &kekUseCase{kekRepo: kekRepo}
}
