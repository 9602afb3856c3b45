package domain

import (
	"github.com/locksetdev/vault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures.
var (
	// ErrKekNotFound indicates no KEK exists for the requested ID, or the
	// registry is empty and a DEK cannot be wrapped.
	ErrKekNotFound = errors.Wrap(errors.ErrNotFound, "kek not found")

	// ErrDekNotFound indicates no DEK exists for the requested ID.
	ErrDekNotFound = errors.Wrap(errors.ErrNotFound, "dek not found")

	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is
	// not supported. Supported: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305).
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates an AEAD open failed: wrong key, tampered
	// ciphertext, or invalid nonce. The authentication tag no longer matches
	// the stored ciphertext, so this is an integrity failure. The specific
	// cause is not disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrIntegrityCheck, "decryption failed")
)
