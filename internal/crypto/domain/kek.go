// Package domain defines the core cryptographic domain models for envelope encryption.
//
// It implements a two-tier key hierarchy: KEK → DEK → Data. KEKs are
// references to externally held master keys (addressed by a KMS key URI);
// they never carry key material themselves. DEKs are symmetric keys wrapped
// by the external KMS under their owning KEK and stored only in wrapped form.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Kek represents a Key Encryption Key: a write-once catalog entry referencing
// an external master key. A KEK is never mutated after creation and can only
// be removed when no DEK references it.
type Kek struct {
	// ID is the unique identifier (UUIDv7).
	ID uuid.UUID
	// KmsKey is the URI of the external master key (e.g. "awskms://...",
	// "gcpkms://...", "base64key://..."). Only the KMS ever sees the key
	// material behind this reference.
	KmsKey string
	// CreatedAt is the UTC timestamp when this KEK was registered.
	// The most recently created KEK wraps new DEKs.
	CreatedAt time.Time
}
