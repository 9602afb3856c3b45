package dto_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	secretsDomain "github.com/locksetdev/vault/internal/secrets/domain"
	"github.com/locksetdev/vault/internal/secrets/http/dto"
)

func TestMapToCreateResponse(t *testing.T) {
	now := time.Now().UTC()
	current := "v1"
	connectionID := uuid.Must(uuid.NewV7())

	secret := &secretsDomain.Secret{
		ID:                uuid.Must(uuid.NewV7()),
		Name:              "db-password",
		CurrentVersion:    &current,
		VaultConnectionID: &connectionID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	version := &secretsDomain.SecretVersion{
		ID:         uuid.Must(uuid.NewV7()),
		SecretID:   secret.ID,
		VersionTag: "v1",
		Ciphertext: []byte("sealed"),
		CreatedAt:  now,
	}

	response := dto.MapToCreateResponse(secret, version)

	assert.Equal(t, secret.ID.String(), response.Secret.ID)
	assert.Equal(t, "db-password", response.Secret.Name)
	require.NotNil(t, response.Secret.CurrentVersion)
	assert.Equal(t, "v1", *response.Secret.CurrentVersion)
	require.NotNil(t, response.Secret.VaultConnectionID)
	assert.Equal(t, connectionID.String(), *response.Secret.VaultConnectionID)
	assert.Equal(t, version.ID.String(), response.Version.ID)
	assert.Equal(t, "v1", response.Version.VersionTag)
}

func TestMapToGetResponse(t *testing.T) {
	now := time.Now().UTC()
	secret := &secretsDomain.Secret{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      "db-password",
		CreatedAt: now,
		UpdatedAt: now,
	}
	version := &secretsDomain.SecretVersion{
		ID:         uuid.Must(uuid.NewV7()),
		SecretID:   secret.ID,
		VersionTag: "v1",
		Plaintext:  []byte("hunter2"),
		CreatedAt:  now,
	}

	response := dto.MapToGetResponse(secret, version)

	assert.Equal(t, "db-password", response.Name)
	assert.Equal(t, "v1", response.VersionTag)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("hunter2")), response.Value)
}

func TestMapSecretsToListResponse(t *testing.T) {
	now := time.Now().UTC()
	secrets := []*secretsDomain.Secret{
		{ID: uuid.Must(uuid.NewV7()), Name: "api-key", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.Must(uuid.NewV7()), Name: "db-password", CreatedAt: now, UpdatedAt: now},
	}

	response := dto.MapSecretsToListResponse(secrets)

	require.Len(t, response.Data, 2)
	assert.Equal(t, "api-key", response.Data[0].Name)
	assert.Equal(t, "db-password", response.Data[1].Name)
}

func TestMapSecretsToListResponse_Empty(t *testing.T) {
	response := dto.MapSecretsToListResponse(nil)
	assert.NotNil(t, response.Data)
	assert.Len(t, response.Data, 0)
}
