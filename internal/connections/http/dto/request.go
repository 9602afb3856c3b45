// Package dto provides data transfer objects for the vault connections HTTP API.
package dto

import (
	"encoding/json"

	validation "github.com/jellydator/validation"

	customValidation "github.com/locksetdev/vault/internal/validation"
)

// CreateConnectionRequest contains the parameters for registering a vault
// connection. Config is the provider-specific configuration document; it is
// sealed before it reaches storage. TTL is in seconds, zero means no expiry.
type CreateConnectionRequest struct {
	PublicID string          `json:"public_id"`
	Name     string          `json:"name"`
	Provider string          `json:"provider"`
	Config   json.RawMessage `json:"config"`
	TTL      int64           `json:"ttl"`
}

// Validate checks if the create connection request is valid.
func (r *CreateConnectionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PublicID,
			validation.Required,
			customValidation.PublicID,
		),
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Provider,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 64),
		),
		validation.Field(&r.Config,
			validation.Required,
		),
		validation.Field(&r.TTL,
			validation.Min(int64(0)),
		),
	)
}

// UpdateConnectionRequest contains the replacement fields for a vault
// connection. All fields are required; updates replace the whole document.
type UpdateConnectionRequest struct {
	Name     string          `json:"name"`
	Provider string          `json:"provider"`
	Config   json.RawMessage `json:"config"`
	TTL      int64           `json:"ttl"`
}

// Validate checks if the update connection request is valid.
func (r *UpdateConnectionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Provider,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 64),
		),
		validation.Field(&r.Config,
			validation.Required,
		),
		validation.Field(&r.TTL,
			validation.Min(int64(0)),
		),
	)
}
