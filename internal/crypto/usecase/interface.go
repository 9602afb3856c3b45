// Package usecase defines the business logic for cryptographic key management.
//
// This package contains interface definitions for repositories and use cases
// related to envelope encryption. Implementations handle the KEK registry,
// DEK lifecycle (generation, rotation, unwrapping) and the bounded plaintext
// DEK cache.
package usecase

import (
	"context"

	"github.com/google/uuid"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
)

// KekRepository defines the interface for Key Encryption Key persistence.
//
// KEK rows are append-only: there is no update operation. Implementations
// must support transaction context propagation via database.GetTx and return
// KEKs newest-first from List().
//
// Available implementations:
//   - PostgreSQLKekRepository: Uses native UUID and BYTEA types
//   - MySQLKekRepository: Uses BINARY(16) for UUIDs and BLOB for binary data
type KekRepository interface {
	// Create stores a new KEK in the repository.
	Create(ctx context.Context, kek *cryptoDomain.Kek) error

	// Get retrieves a KEK by ID. Returns ErrKekNotFound if no row matches.
	Get(ctx context.Context, kekID uuid.UUID) (*cryptoDomain.Kek, error)

	// GetLatest retrieves the most recently created KEK, used to wrap new DEKs.
	GetLatest(ctx context.Context) (*cryptoDomain.Kek, error)

	// List retrieves all KEKs ordered newest first.
	List(ctx context.Context) ([]*cryptoDomain.Kek, error)

	// Delete removes a KEK. Returns ErrReferentialIntegrity if any DEK
	// still references it.
	Delete(ctx context.Context, kekID uuid.UUID) error
}

// DekRepository defines the interface for Data Encryption Key persistence.
//
// DEK rows are append-only; rotation inserts a new row. The most recently
// created DEK is the active one for new writes.
type DekRepository interface {
	// Create stores a new DEK. Returns ErrConflict if the key_id is taken.
	Create(ctx context.Context, dek *cryptoDomain.Dek) error

	// Get retrieves a DEK by ID. Returns ErrDekNotFound if no row matches.
	Get(ctx context.Context, dekID uuid.UUID) (*cryptoDomain.Dek, error)

	// GetLatest retrieves the most recently created DEK.
	GetLatest(ctx context.Context) (*cryptoDomain.Dek, error)
}

// KekUseCase defines the business logic for the KEK registry.
//
// A KEK is a reference to a master key held by an external KMS; registering
// one never transfers key material. Removal is blocked while any DEK is
// wrapped under the KEK.
type KekUseCase interface {
	// Register adds a new KEK referencing the given KMS key URI.
	Register(ctx context.Context, kmsKey string) (*cryptoDomain.Kek, error)

	// Get retrieves a KEK by ID.
	Get(ctx context.Context, kekID uuid.UUID) (*cryptoDomain.Kek, error)

	// List retrieves all registered KEKs, newest first.
	List(ctx context.Context) ([]*cryptoDomain.Kek, error)

	// Remove deletes a KEK that no DEK references.
	Remove(ctx context.Context, kekID uuid.UUID) error
}

// DekUseCase defines the business logic for DEK lifecycle management.
//
// All methods that return plaintext key material hand ownership to the
// caller: the caller must zero the returned key when done with it.
type DekUseCase interface {
	// Active returns the active DEK (most recently created) together with
	// its plaintext key. If no DEK exists yet, one is generated under the
	// latest KEK with the given algorithm.
	Active(ctx context.Context, alg cryptoDomain.Algorithm) (*cryptoDomain.Dek, []byte, error)

	// Unwrap returns the identified DEK together with its plaintext key,
	// served from the process-local cache when fresh.
	Unwrap(ctx context.Context, dekID uuid.UUID) (*cryptoDomain.Dek, []byte, error)

	// Rotate generates a new DEK under the latest KEK and makes it the
	// active key for subsequent writes. Existing DEKs stay valid for reads.
	Rotate(ctx context.Context, alg cryptoDomain.Algorithm) (*cryptoDomain.Dek, error)
}
