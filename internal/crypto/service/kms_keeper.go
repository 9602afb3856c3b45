package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KeeperWrapper implements KeyWrapper using gocloud.dev/secrets.
//
// Each distinct KMS key URI gets one *secrets.Keeper, opened lazily and
// cached for the lifetime of the process. Keepers are safe for concurrent
// use, so a single instance per URI serves all goroutines.
//
// Supported URI schemes: awskms://, gcpkms://, azurekeyvault://,
// hashivault://, base64key:// (local, for development and tests).
type KeeperWrapper struct {
	mu      sync.Mutex
	keepers map[string]*secrets.Keeper
}

// NewKeeperWrapper creates a new KeeperWrapper with an empty keeper cache.
func NewKeeperWrapper() *KeeperWrapper {
	return &KeeperWrapper{keepers: make(map[string]*secrets.Keeper)}
}

// keeper returns the cached keeper for the URI, opening it on first use.
func (w *KeeperWrapper) keeper(ctx context.Context, kmsKey string) (*secrets.Keeper, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if k, ok := w.keepers[kmsKey]; ok {
		return k, nil
	}

	k, err := secrets.OpenKeeper(ctx, kmsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	w.keepers[kmsKey] = k
	return k, nil
}

// GenerateDataKey generates a fresh 32-byte data key with crypto/rand and
// wraps it under the given KMS key URI. Both the plaintext and wrapped forms
// are returned; the caller owns the plaintext and must zero it when done.
func (w *KeeperWrapper) GenerateDataKey(ctx context.Context, kmsKey string) (plaintext, wrapped []byte, err error) {
	plaintext = make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(plaintext); err != nil {
		return nil, nil, fmt.Errorf("failed to generate data key: %w", err)
	}

	keeper, err := w.keeper(ctx, kmsKey)
	if err != nil {
		cryptoDomain.Zero(plaintext)
		return nil, nil, err
	}

	wrapped, err = keeper.Encrypt(ctx, plaintext)
	if err != nil {
		cryptoDomain.Zero(plaintext)
		return nil, nil, fmt.Errorf("failed to wrap data key: %w", err)
	}

	return plaintext, wrapped, nil
}

// Unwrap recovers the plaintext data key from its wrapped form using the
// KMS key URI it was wrapped under. The caller owns the plaintext and must
// zero it when done.
func (w *KeeperWrapper) Unwrap(ctx context.Context, kmsKey string, wrapped []byte) ([]byte, error) {
	keeper, err := w.keeper(ctx, kmsKey)
	if err != nil {
		return nil, err
	}

	plaintext, err := keeper.Decrypt(ctx, wrapped)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap data key: %w", err)
	}

	if len(plaintext) != cryptoDomain.KeySize {
		cryptoDomain.Zero(plaintext)
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	return plaintext, nil
}

// Close closes all cached keepers. Safe to call multiple times.
func (w *KeeperWrapper) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var firstErr error
	for uri, k := range w.keepers {
		if err := k.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close keeper for %s: %w", uri, err)
		}
		delete(w.keepers, uri)
	}
	return firstErr
}
