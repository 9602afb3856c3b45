// Package usecase implements the business logic for vault connection
// management. Connection configurations are sealed under DEKs the same way
// secret payloads are.
package usecase

import (
	"context"

	connectionsDomain "github.com/locksetdev/vault/internal/connections/domain"
)

// ConnectionRepository defines the interface for VaultConnection persistence.
//
// GetByPublicIDForUpdate must only be called inside a transaction.
type ConnectionRepository interface {
	Create(ctx context.Context, conn *connectionsDomain.VaultConnection) error
	GetByPublicID(ctx context.Context, publicID string) (*connectionsDomain.VaultConnection, error)
	GetByPublicIDForUpdate(ctx context.Context, publicID string) (*connectionsDomain.VaultConnection, error)
	Update(ctx context.Context, conn *connectionsDomain.VaultConnection) error
	Delete(ctx context.Context, publicID string) error
}

// CreateConnectionInput carries the fields for registering a vault connection.
type CreateConnectionInput struct {
	PublicID string
	Name     string
	Provider string
	Config   []byte
	TTL      int64
}

// UpdateConnectionInput carries the replacement fields for a vault connection.
type UpdateConnectionInput struct {
	Name     string
	Provider string
	Config   []byte
	TTL      int64
}

// ConnectionUseCase defines the interface for vault connection business logic.
type ConnectionUseCase interface {
	// Create registers a connection with its configuration sealed under
	// the active DEK.
	Create(ctx context.Context, input *CreateConnectionInput) (*connectionsDomain.VaultConnection, error)

	// Get retrieves and decrypts a connection. A connection whose TTL has
	// elapsed since its last update behaves as absent.
	//
	// Security Note: The returned connection carries decrypted data in the
	// Config field. Callers MUST zero it after use via
	// cryptoDomain.Zero(conn.Config).
	Get(ctx context.Context, publicID string) (*connectionsDomain.VaultConnection, error)

	// Update re-seals the configuration under the then-active DEK and
	// resets the TTL clock.
	Update(ctx context.Context, publicID string, input *UpdateConnectionInput) (*connectionsDomain.VaultConnection, error)

	// Delete removes a connection; dependent secrets lose the reference
	// but keep their rows.
	Delete(ctx context.Context, publicID string) error
}
