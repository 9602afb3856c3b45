// Package service provides cryptographic services for envelope encryption.
// Implements AEAD payload ciphers (AES-256-GCM, ChaCha20-Poly1305), the
// envelope seal/open operations, and DEK wrapping through an external KMS.
package service

import (
	"context"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyWrapper defines the interface for DEK wrapping through an external KMS.
// The master key material never enters this process: wrap and unwrap are
// remote calls addressed by the KEK's KMS key URI.
type KeyWrapper interface {
	// GenerateDataKey generates a fresh 32-byte data key and returns both the
	// plaintext key and its wrapped form under the given KMS key URI.
	GenerateDataKey(ctx context.Context, kmsKey string) (plaintext, wrapped []byte, err error)

	// Unwrap recovers the plaintext data key from its wrapped form.
	Unwrap(ctx context.Context, kmsKey string, wrapped []byte) ([]byte, error)

	// Close releases all cached KMS keeper connections.
	Close() error
}

// Envelope defines the interface for sealing and opening payloads with a DEK.
// Seal produces ciphertext, nonce and a plaintext digest; Open verifies the
// digest after decryption and fails with an integrity error on mismatch.
type Envelope interface {
	Seal(plaintext, key []byte, alg cryptoDomain.Algorithm) (*SealedPayload, error)
	Open(sealed *SealedPayload, key []byte, alg cryptoDomain.Algorithm) ([]byte, error)
}
