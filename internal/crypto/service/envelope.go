package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
	"github.com/locksetdev/vault/internal/errors"
)

// SealedPayload is the stored form of an envelope-encrypted payload: the
// AEAD ciphertext, the nonce used for it and a hex-encoded SHA-256 digest
// of the plaintext. The digest is an end-to-end integrity check independent
// of the AEAD tag; it detects corruption introduced between decryption and
// storage of the original payload.
type SealedPayload struct {
	Ciphertext []byte
	Nonce      []byte
	Digest     string
}

// EnvelopeService implements Envelope on top of an AEADManager.
type EnvelopeService struct {
	aeadManager AEADManager
}

// NewEnvelope creates a new EnvelopeService.
func NewEnvelope(aeadManager AEADManager) *EnvelopeService {
	return &EnvelopeService{aeadManager: aeadManager}
}

// Seal encrypts plaintext with the given DEK plaintext key and algorithm.
// The returned payload carries the hex-encoded SHA-256 digest of the
// plaintext, computed before encryption.
func (e *EnvelopeService) Seal(plaintext, key []byte, alg cryptoDomain.Algorithm) (*SealedPayload, error) {
	aead, err := e.aeadManager.CreateCipher(key, alg)
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(plaintext)

	ciphertext, nonce, err := aead.Encrypt(plaintext, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrEncryptionFailure, err.Error())
	}

	return &SealedPayload{
		Ciphertext: ciphertext,
		Nonce:      nonce,
		Digest:     hex.EncodeToString(digest[:]),
	}, nil
}

// Open decrypts a sealed payload with the given DEK plaintext key and
// algorithm, then verifies the stored digest against the recovered
// plaintext. Both failure modes are integrity failures: the AEAD open
// surfaces ErrDecryptionFailed and a digest mismatch wraps
// ErrIntegrityCheck directly.
func (e *EnvelopeService) Open(sealed *SealedPayload, key []byte, alg cryptoDomain.Algorithm) ([]byte, error) {
	aead, err := e.aeadManager.CreateCipher(key, alg)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Decrypt(sealed.Ciphertext, sealed.Nonce, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	digest := sha256.Sum256(plaintext)
	want := hex.EncodeToString(digest[:])
	if subtle.ConstantTimeCompare([]byte(want), []byte(sealed.Digest)) != 1 {
		cryptoDomain.Zero(plaintext)
		return nil, errors.Wrap(errors.ErrIntegrityCheck, "payload digest mismatch")
	}

	return plaintext, nil
}
