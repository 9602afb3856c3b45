// Package domain defines the core domain models for secret management.
// Secrets use an immutable versioning system with envelope encryption:
// payloads live in append-only version rows, and the parent secret carries
// current/previous pointers that are swapped when a new version is written.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultVersionTag is assigned to the first version of a secret when the
// caller does not name one.
const DefaultVersionTag = "v1"

// Secret represents a named secret with version pointers and metadata.
// The payload itself is never stored here; it lives in SecretVersion rows.
type Secret struct {
	// ID is the unique identifier (UUIDv7).
	ID uuid.UUID
	// Name is the unique logical name used to access the secret.
	Name string
	// CurrentVersion is the tag of the version served by default (nil when
	// the secret has no readable version).
	CurrentVersion *string
	// PreviousVersion is the tag current pointed at before the last write.
	PreviousVersion *string
	// VaultConnectionID optionally links the secret to the vault connection
	// it was provisioned from. Severed (set to nil) when the connection is
	// deleted.
	VaultConnectionID *uuid.UUID
	// ExpireAt marks when the whole secret expires (nil means never).
	ExpireAt *time.Time
	// CreatedAt is the UTC timestamp when the secret was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last pointer or metadata change.
	UpdatedAt time.Time
}

// Expired reports whether the secret as a whole has passed its expiry.
func (s *Secret) Expired(now time.Time) bool {
	return s.ExpireAt != nil && now.After(*s.ExpireAt)
}

// SecretVersion represents one immutable encrypted payload of a secret.
// Version rows are never updated in place except for the soft-delete flags.
type SecretVersion struct {
	// ID is the unique identifier (UUIDv7).
	ID uuid.UUID
	// SecretID references the owning secret.
	SecretID uuid.UUID
	// VersionTag identifies this version within the secret (unique per secret).
	VersionTag string
	// Ciphertext contains the encrypted secret payload.
	Ciphertext []byte
	// Nonce is the random value used during AEAD encryption.
	Nonce []byte
	// Digest is the hex-encoded SHA-256 of the plaintext, verified on read.
	Digest string
	// DekID references the DEK this version was sealed under.
	DekID uuid.UUID
	// Deleted marks a soft-deleted version; the ciphertext stays in place
	// but the version is no longer readable.
	Deleted bool
	// DeletedAt is when the version was soft-deleted (nil if active).
	DeletedAt *time.Time
	// ExpireAt marks when this version expires (nil means never).
	ExpireAt *time.Time
	// CreatedAt is the UTC timestamp when this version was written.
	CreatedAt time.Time
	// Plaintext holds the decrypted payload in memory only; must be zeroed
	// after use and never serialized.
	Plaintext []byte `json:"-"`
}

// Expired reports whether this version has passed its expiry.
func (v *SecretVersion) Expired(now time.Time) bool {
	return v.ExpireAt != nil && now.After(*v.ExpireAt)
}

// Readable reports whether the version can be served: not soft-deleted and
// not expired.
func (v *SecretVersion) Readable(now time.Time) bool {
	return !v.Deleted && !v.Expired(now)
}
