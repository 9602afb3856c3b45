package domain

// Algorithm represents the cryptographic algorithm used for payload encryption.
//
// All supported algorithms provide Authenticated Encryption with Associated Data
// (AEAD), so a single primitive gives both confidentiality and tamper-evidence.
// The separately stored SHA-256 digest is an independent integrity check kept
// for detecting storage-layer corruption distinct from cryptographic tampering.
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	//
	// Uses a 256-bit key, 12-byte nonce and 16-byte authentication tag.
	// Preferred on CPUs with AES-NI hardware acceleration.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption algorithm.
	//
	// Uses a 256-bit key, 12-byte nonce and 16-byte authentication tag.
	// Constant-time in software; preferred on platforms without AES-NI.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KeySize is the required key length in bytes for all supported algorithms.
const KeySize = 32
