// Package domain defines the core entities for vault connection management.
//
// A VaultConnection stores the configuration needed to reach an external
// secret provider (cloud KMS account, database, third-party vault). The
// configuration blob is sealed under a DEK exactly like secret payloads,
// with a plaintext digest stored beside the ciphertext.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// VaultConnection represents an encrypted connection configuration for an
// external secret provider.
type VaultConnection struct {
	ID         uuid.UUID `json:"id"`
	PublicID   string    `json:"public_id"`
	Name       string    `json:"name"`
	Provider   string    `json:"provider"`
	Ciphertext []byte    `json:"-"`
	Nonce      []byte    `json:"-"`
	Digest     string    `json:"-"`
	DekID      uuid.UUID `json:"dek_id"`
	// TTL in seconds, measured from UpdatedAt. Zero means no expiry.
	TTL       int64     `json:"ttl"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Config holds the decrypted configuration after a read. Never
	// persisted or serialized.
	Config []byte `json:"-"`
}

// Expired reports whether the connection's TTL has elapsed since the last
// update.
func (v *VaultConnection) Expired(now time.Time) bool {
	if v.TTL <= 0 {
		return false
	}
	return now.After(v.UpdatedAt.Add(time.Duration(v.TTL) * time.Second))
}
