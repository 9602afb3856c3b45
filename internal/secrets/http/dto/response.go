package dto

import (
	"encoding/base64"
	"time"

	secretsDomain "github.com/locksetdev/vault/internal/secrets/domain"
)

// SecretResponse carries secret metadata in API responses. Payloads are
// never included here.
type SecretResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	CurrentVersion    *string    `json:"current_version,omitempty"`
	PreviousVersion   *string    `json:"previous_version,omitempty"`
	VaultConnectionID *string    `json:"vault_connection_id,omitempty"`
	ExpireAt          *time.Time `json:"expire_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// SecretVersionResponse carries version metadata in API responses.
type SecretVersionResponse struct {
	ID         string     `json:"id"`
	VersionTag string     `json:"version_tag"`
	ExpireAt   *time.Time `json:"expire_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateSecretResponse is returned when a secret is created with its first
// version.
type CreateSecretResponse struct {
	Secret  SecretResponse        `json:"secret"`
	Version SecretVersionResponse `json:"version"`
}

// GetSecretResponse carries a decrypted payload. Value is base64 encoded.
type GetSecretResponse struct {
	Name       string     `json:"name"`
	VersionTag string     `json:"version_tag"`
	Value      string     `json:"value"`
	ExpireAt   *time.Time `json:"expire_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ListSecretsResponse represents a paginated list of secrets.
type ListSecretsResponse struct {
	Data []SecretResponse `json:"data"`
}

// MapSecretToResponse converts a domain secret to its metadata response.
func MapSecretToResponse(secret *secretsDomain.Secret) SecretResponse {
	response := SecretResponse{
		ID:              secret.ID.String(),
		Name:            secret.Name,
		CurrentVersion:  secret.CurrentVersion,
		PreviousVersion: secret.PreviousVersion,
		ExpireAt:        secret.ExpireAt,
		CreatedAt:       secret.CreatedAt,
		UpdatedAt:       secret.UpdatedAt,
	}

	if secret.VaultConnectionID != nil {
		connectionID := secret.VaultConnectionID.String()
		response.VaultConnectionID = &connectionID
	}

	return response
}

// MapVersionToResponse converts a domain version to its metadata response.
func MapVersionToResponse(version *secretsDomain.SecretVersion) SecretVersionResponse {
	return SecretVersionResponse{
		ID:         version.ID.String(),
		VersionTag: version.VersionTag,
		ExpireAt:   version.ExpireAt,
		CreatedAt:  version.CreatedAt,
	}
}

// MapToCreateResponse combines a secret and its first version into the
// creation response.
func MapToCreateResponse(secret *secretsDomain.Secret, version *secretsDomain.SecretVersion) CreateSecretResponse {
	return CreateSecretResponse{
		Secret:  MapSecretToResponse(secret),
		Version: MapVersionToResponse(version),
	}
}

// MapToGetResponse builds the decrypted payload response. The caller owns
// zeroing version.Plaintext after the response is written.
func MapToGetResponse(secret *secretsDomain.Secret, version *secretsDomain.SecretVersion) GetSecretResponse {
	return GetSecretResponse{
		Name:       secret.Name,
		VersionTag: version.VersionTag,
		Value:      base64.StdEncoding.EncodeToString(version.Plaintext),
		ExpireAt:   version.ExpireAt,
		CreatedAt:  version.CreatedAt,
	}
}

// MapSecretsToListResponse converts a slice of domain secrets to a list
// response.
func MapSecretsToListResponse(secrets []*secretsDomain.Secret) ListSecretsResponse {
	data := make([]SecretResponse, 0, len(secrets))
	for _, secret := range secrets {
		data = append(data, MapSecretToResponse(secret))
	}

	return ListSecretsResponse{
		Data: data,
	}
}
