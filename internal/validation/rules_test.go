package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/locksetdev/vault/internal/errors"
)

func TestSecretName(t *testing.T) {
	valid := []string{"a", "db-password", "api_key_2", "A1"}
	for _, name := range valid {
		assert.NoError(t, SecretName.Validate(name), name)
	}

	invalid := []string{"", "-leading", "trailing-", "has space", "has/slash", "has.dot"}
	for _, name := range invalid {
		assert.Error(t, SecretName.Validate(name), name)
	}
}

func TestVersionTag(t *testing.T) {
	valid := []string{"v1", "1.2.0", "blue", "rc_1", "2024-01-01"}
	for _, tag := range valid {
		assert.NoError(t, VersionTag.Validate(tag), tag)
	}

	invalid := []string{"", ".hidden", "trailing.", "-v1", "v 1"}
	for _, tag := range invalid {
		assert.Error(t, VersionTag.Validate(tag), tag)
	}
}

func TestPublicID(t *testing.T) {
	valid := []string{"vlt_prod_01", "abcdefgh", "A1234567890123456789012B"}
	for _, id := range valid {
		assert.NoError(t, PublicID.Validate(id), id)
	}

	invalid := []string{"", "short", "_leading_underscore", "ends_with_underscore_", "way_too_long_for_a_public_id_field"}
	for _, id := range invalid {
		assert.Error(t, PublicID.Validate(id), id)
	}
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("x"))
	assert.Error(t, NotBlank.Validate("   "))
	assert.Error(t, NotBlank.Validate(""))
}

func TestWrapValidationError(t *testing.T) {
	assert.Nil(t, WrapValidationError(nil))

	err := WrapValidationError(SecretName.Validate("-bad-"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
