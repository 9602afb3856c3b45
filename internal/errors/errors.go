// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist or is
	// logically expired.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGone indicates the resource still exists in storage but has been
	// tombstoned or has passed its own expiry and is no longer served.
	ErrGone = errors.New("gone")

	// ErrEncryptionFailure indicates a KMS or cipher operation failed.
	// Data is never stored or returned unencrypted on this error.
	ErrEncryptionFailure = errors.New("encryption failure")

	// ErrIntegrityCheck indicates the stored digest does not match the
	// decrypted payload. Treated as corruption; no plaintext is returned.
	ErrIntegrityCheck = errors.New("integrity check failed")

	// ErrReferentialIntegrity indicates a delete was blocked by a
	// restrict-on-delete dependency (e.g., a KEK with dependent DEKs).
	ErrReferentialIntegrity = errors.New("referential integrity violation")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
