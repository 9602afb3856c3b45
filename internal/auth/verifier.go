// Package auth implements request authentication with ECDSA P-256 signatures.
//
// Clients sign each request with their private key; the server verifies
// against a single configured public key. The signed message is the SHA-256
// digest of `timestamp + "\n" + path + "\n" + body`, with the timestamp in
// Unix milliseconds. A clock window bounds replay of captured signatures.
package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strconv"
	"time"

	apperrors "github.com/locksetdev/vault/internal/errors"
)

// signatureSize is the raw r || s encoding length for P-256.
const signatureSize = 64

// Verifier checks request signatures against a configured public key.
type Verifier struct {
	publicKey *ecdsa.PublicKey
	window    time.Duration

	// now is stubbed in tests.
	now func() time.Time
}

// NewVerifier creates a Verifier from a hex-encoded SEC1 public key
// (compressed or uncompressed) and a clock window.
func NewVerifier(publicKeyHex string, window time.Duration) (*Verifier, error) {
	publicKey, err := ParsePublicKey(publicKeyHex)
	if err != nil {
		return nil, err
	}

	return &Verifier{
		publicKey: publicKey,
		window:    window,
		now:       time.Now,
	}, nil
}

// ParsePublicKey decodes a hex-encoded SEC1 P-256 public key.
func ParsePublicKey(publicKeyHex string) (*ecdsa.PublicKey, error) {
	raw, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "public key must be hex encoded")
	}

	curve := elliptic.P256()
	var x, y *big.Int

	switch len(raw) {
	case 33:
		x, y = elliptic.UnmarshalCompressed(curve, raw)
	case 65:
		x, y = elliptic.Unmarshal(curve, raw)
	default:
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "public key must be a SEC1 P-256 point")
	}
	if x == nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "public key is not on the P-256 curve")
	}

	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}

// SignedDigest computes the digest clients sign: SHA-256 over the timestamp,
// request path and body joined by newlines.
func SignedDigest(timestamp, path string, body []byte) []byte {
	h := sha256.New()
	h.Write([]byte(timestamp))
	h.Write([]byte("\n"))
	h.Write([]byte(path))
	h.Write([]byte("\n"))
	h.Write(body)
	return h.Sum(nil)
}

// Verify checks the timestamp window and the signature for a request.
// Returns ErrInvalidInput for malformed inputs or stale timestamps and
// ErrUnauthorized when the signature does not verify.
func (v *Verifier) Verify(timestamp, path string, body []byte, signatureHex string) error {
	timestampMs, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "invalid timestamp format")
	}

	nowMs := v.now().UnixMilli()
	diff := nowMs - timestampMs
	if diff < 0 {
		diff = -diff
	}
	if diff > v.window.Milliseconds() {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "timestamp is outside of the recv window")
	}

	raw, err := hex.DecodeString(signatureHex)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "invalid signature format")
	}
	if len(raw) != signatureSize {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "invalid signature length")
	}

	r := new(big.Int).SetBytes(raw[:signatureSize/2])
	s := new(big.Int).SetBytes(raw[signatureSize/2:])

	digest := SignedDigest(timestamp, path, body)
	if !ecdsa.Verify(v.publicKey, digest, r, s) {
		return apperrors.ErrUnauthorized
	}

	return nil
}
