package domain

import (
	"time"

	"github.com/google/uuid"
)

// Dek represents a Data Encryption Key used to encrypt secret payloads and
// connection configurations. The key material is wrapped by the external KMS
// under the owning KEK; the plaintext form only ever lives in the bounded
// process-local cache and must be zeroed when evicted.
//
// DEK rows are immutable: rotation creates a new row, it never mutates an
// existing one. The most recently created DEK is the active one for new
// writes; older DEKs remain valid for decrypting data written under them and
// are never deleted while referenced (restrict-on-delete).
type Dek struct {
	// ID is the unique identifier (UUIDv7). Time-ordered, which is what
	// makes "most recently created" selectable by primary key.
	ID uuid.UUID
	// KeyID is the external correlation identifier, unique across all DEKs.
	KeyID string
	// KekID references the KEK whose master key wraps this DEK.
	KekID uuid.UUID
	// EncryptedKey is the wrapped key material returned by the KMS.
	EncryptedKey []byte
	// Algorithm is the payload cipher this DEK is used with.
	Algorithm Algorithm
	// CreatedAt is the UTC timestamp when this DEK was generated.
	CreatedAt time.Time
}
