package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
	"github.com/locksetdev/vault/internal/errors"
)

func newTestEnvelope() *EnvelopeService {
	return NewEnvelope(NewAEADManager())
}

func generateTestKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestEnvelopeService_Seal(t *testing.T) {
	envelope := newTestEnvelope()
	key := generateTestKey(t)

	t.Run("seal produces ciphertext, nonce and plaintext digest", func(t *testing.T) {
		plaintext := []byte(`{"username":"app","password":"hunter2"}`)

		sealed, err := envelope.Seal(plaintext, key, cryptoDomain.AESGCM)
		require.NoError(t, err)

		assert.NotEmpty(t, sealed.Ciphertext)
		assert.Len(t, sealed.Nonce, 12)
		assert.NotEqual(t, plaintext, sealed.Ciphertext)

		digest := sha256.Sum256(plaintext)
		assert.Equal(t, hex.EncodeToString(digest[:]), sealed.Digest)
	})

	t.Run("seal with chacha20-poly1305", func(t *testing.T) {
		sealed, err := envelope.Seal([]byte("payload"), key, cryptoDomain.ChaCha20)
		require.NoError(t, err)
		assert.NotEmpty(t, sealed.Ciphertext)
	})

	t.Run("seal with invalid key size", func(t *testing.T) {
		_, err := envelope.Seal([]byte("payload"), make([]byte, 16), cryptoDomain.AESGCM)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("seal with unsupported algorithm", func(t *testing.T) {
		_, err := envelope.Seal([]byte("payload"), key, cryptoDomain.Algorithm("rot13"))
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
	})

	t.Run("sealing twice produces different ciphertexts", func(t *testing.T) {
		plaintext := []byte("same payload")

		first, err := envelope.Seal(plaintext, key, cryptoDomain.AESGCM)
		require.NoError(t, err)

		second, err := envelope.Seal(plaintext, key, cryptoDomain.AESGCM)
		require.NoError(t, err)

		assert.NotEqual(t, first.Ciphertext, second.Ciphertext)
		assert.NotEqual(t, first.Nonce, second.Nonce)
		assert.Equal(t, first.Digest, second.Digest)
	})
}

func TestEnvelopeService_Open(t *testing.T) {
	envelope := newTestEnvelope()
	key := generateTestKey(t)

	t.Run("open recovers the original plaintext", func(t *testing.T) {
		plaintext := []byte("sensitive payload")

		sealed, err := envelope.Seal(plaintext, key, cryptoDomain.AESGCM)
		require.NoError(t, err)

		opened, err := envelope.Open(sealed, key, cryptoDomain.AESGCM)
		require.NoError(t, err)
		assert.Equal(t, plaintext, opened)
	})

	t.Run("open fails with wrong key", func(t *testing.T) {
		sealed, err := envelope.Seal([]byte("payload"), key, cryptoDomain.AESGCM)
		require.NoError(t, err)

		wrongKey := generateTestKey(t)
		_, err = envelope.Open(sealed, wrongKey, cryptoDomain.AESGCM)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("open fails with tampered ciphertext", func(t *testing.T) {
		sealed, err := envelope.Seal([]byte("payload"), key, cryptoDomain.ChaCha20)
		require.NoError(t, err)

		sealed.Ciphertext[0] ^= 0xFF
		_, err = envelope.Open(sealed, key, cryptoDomain.ChaCha20)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		assert.ErrorIs(t, err, errors.ErrIntegrityCheck)
	})

	t.Run("open fails with mismatched digest", func(t *testing.T) {
		sealed, err := envelope.Seal([]byte("payload"), key, cryptoDomain.AESGCM)
		require.NoError(t, err)

		digest := sha256.Sum256([]byte("different payload"))
		sealed.Digest = hex.EncodeToString(digest[:])

		_, err = envelope.Open(sealed, key, cryptoDomain.AESGCM)
		assert.ErrorIs(t, err, errors.ErrIntegrityCheck)
	})

	t.Run("open fails with wrong algorithm", func(t *testing.T) {
		sealed, err := envelope.Seal([]byte("payload"), key, cryptoDomain.AESGCM)
		require.NoError(t, err)

		_, err = envelope.Open(sealed, key, cryptoDomain.ChaCha20)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})
}
