package service

import (
	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
)

// AEADManagerService constructs AEAD cipher instances for the payload
// algorithms a DEK can be bound to.
type AEADManagerService struct{}

// NewAEADManager creates a new AEADManagerService.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher returns an AEAD for the given 32-byte key and algorithm.
// Returns ErrInvalidKeySize or ErrUnsupportedAlgorithm on bad input.
func (am *AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	switch alg {
	case cryptoDomain.AESGCM:
		return NewAESGCM(key)
	case cryptoDomain.ChaCha20:
		return NewChaCha20Poly1305(key)
	default:
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
}
