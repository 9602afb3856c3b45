// Package usecase defines the interfaces and implementations for secret management use cases.
// Use cases orchestrate repositories and cryptographic services to implement
// envelope-encrypted secret storage with pointer-based versioning.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	secretsDomain "github.com/locksetdev/vault/internal/secrets/domain"
)

// SecretRepository defines the interface for Secret persistence operations.
//
// GetByNameForUpdate must only be called inside a transaction; the row lock
// it takes serializes concurrent version writes for the same secret.
type SecretRepository interface {
	Create(ctx context.Context, secret *secretsDomain.Secret) error
	GetByName(ctx context.Context, name string) (*secretsDomain.Secret, error)
	GetByNameForUpdate(ctx context.Context, name string) (*secretsDomain.Secret, error)
	UpdateVersionPointers(ctx context.Context, secretID uuid.UUID, current, previous *string) error
	Delete(ctx context.Context, secretID uuid.UUID) error
	List(ctx context.Context, offset, limit int) ([]*secretsDomain.Secret, error)
	CreateVersion(ctx context.Context, version *secretsDomain.SecretVersion) error
	GetVersion(ctx context.Context, secretID uuid.UUID, versionTag string) (*secretsDomain.SecretVersion, error)
	SoftDeleteVersion(ctx context.Context, versionID uuid.UUID, deletedAt time.Time) error
}

// CreateSecretInput carries the fields for creating a secret with its first version.
type CreateSecretInput struct {
	Name              string
	Value             []byte
	VersionTag        string
	ExpireAt          *time.Time
	VersionExpireAt   *time.Time
	VaultConnectionID *uuid.UUID
}

// CreateVersionInput carries the fields for adding a version to an existing secret.
type CreateVersionInput struct {
	VersionTag string
	Value      []byte
	ExpireAt   *time.Time
}

// SecretUseCase defines the interface for secret management business logic.
type SecretUseCase interface {
	// Create stores a new secret together with its first version, sealed
	// under the active DEK. The version tag defaults to "v1" when empty.
	Create(ctx context.Context, input *CreateSecretInput) (*secretsDomain.Secret, *secretsDomain.SecretVersion, error)

	// CreateVersion adds a version to an existing secret and swaps the
	// current/previous pointers atomically under a row lock.
	CreateVersion(ctx context.Context, name string, input *CreateVersionInput) (*secretsDomain.SecretVersion, error)

	// GetCurrent retrieves and decrypts the version the current pointer
	// names.
	//
	// Security Note: The returned version contains plaintext data in the
	// Plaintext field. Callers MUST zero it after use via
	// cryptoDomain.Zero(version.Plaintext).
	GetCurrent(ctx context.Context, name string) (*secretsDomain.Secret, *secretsDomain.SecretVersion, error)

	// GetVersion retrieves and decrypts a specific version by tag.
	//
	// Security Note: The returned version contains plaintext data in the
	// Plaintext field. Callers MUST zero it after use via
	// cryptoDomain.Zero(version.Plaintext).
	GetVersion(ctx context.Context, name, versionTag string) (*secretsDomain.Secret, *secretsDomain.SecretVersion, error)

	// Delete removes a secret and all of its versions.
	Delete(ctx context.Context, name string) error

	// SoftDeleteVersion marks a single version as deleted; its ciphertext
	// stays in place but it can no longer be read.
	SoftDeleteVersion(ctx context.Context, name, versionTag string) error

	// List retrieves secret metadata ordered by name with pagination.
	// Values are never included.
	List(ctx context.Context, offset, limit int) ([]*secretsDomain.Secret, error)
}
