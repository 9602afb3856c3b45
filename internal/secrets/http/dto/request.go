// Package dto provides data transfer objects for the secrets HTTP API.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/locksetdev/vault/internal/validation"
)

// CreateSecretRequest contains the parameters for creating a secret together
// with its first version. Value carries the base64-encoded payload. An empty
// version tag lets the server pick the default.
type CreateSecretRequest struct {
	Name              string     `json:"name"`
	Value             string     `json:"value"`
	VersionTag        string     `json:"version_tag"`
	ExpireAt          *time.Time `json:"expire_at"`
	VersionExpireAt   *time.Time `json:"version_expire_at"`
	VaultConnectionID string     `json:"vault_connection_id"`
}

// Validate checks if the create secret request is valid.
func (r *CreateSecretRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(1, 255),
			customValidation.SecretName,
		),
		validation.Field(&r.Value,
			validation.Required,
			customValidation.Base64,
		),
		validation.Field(&r.VersionTag,
			validation.Length(1, 255),
			customValidation.VersionTag,
		),
	)
}

// CreateSecretVersionRequest contains the parameters for adding a version to
// an existing secret.
type CreateSecretVersionRequest struct {
	VersionTag string     `json:"version_tag"`
	Value      string     `json:"value"`
	ExpireAt   *time.Time `json:"expire_at"`
}

// Validate checks if the create secret version request is valid.
func (r *CreateSecretVersionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.VersionTag,
			validation.Required,
			validation.Length(1, 255),
			customValidation.VersionTag,
		),
		validation.Field(&r.Value,
			validation.Required,
			customValidation.Base64,
		),
	)
}
