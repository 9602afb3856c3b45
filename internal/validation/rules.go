// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/locksetdev/vault/internal/errors"
)

var (
	// secretNameRegex allows alphanumerics with interior dashes and underscores.
	secretNameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9_-]*[a-zA-Z0-9])?$`)

	// versionTagRegex additionally allows interior dots (e.g. "1.2.0").
	versionTagRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9_.-]*[a-zA-Z0-9])?$`)

	// publicIDRegex pins vault connection public IDs to 8-24 characters.
	publicIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]{6,22}[a-zA-Z0-9]$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// SecretName validates secret names: alphanumeric edges, dashes and
// underscores inside.
var SecretName = validation.NewStringRuleWithError(
	func(s string) bool {
		return secretNameRegex.MatchString(s)
	},
	validation.NewError("validation_secret_name", "must contain only alphanumerics, dashes and underscores, and start and end with an alphanumeric"),
)

// VersionTag validates version tags: the secret-name alphabet plus interior dots.
var VersionTag = validation.NewStringRuleWithError(
	func(s string) bool {
		return versionTagRegex.MatchString(s)
	},
	validation.NewError("validation_version_tag", "must contain only alphanumerics, dashes, underscores and dots, and start and end with an alphanumeric"),
)

// PublicID validates vault connection public identifiers (8-24 characters).
var PublicID = validation.NewStringRuleWithError(
	func(s string) bool {
		return publicIDRegex.MatchString(s)
	},
	validation.NewError("validation_public_id", "must be 8-24 alphanumeric, dash or underscore characters with alphanumeric edges"),
)

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
