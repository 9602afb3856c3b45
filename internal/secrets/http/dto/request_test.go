package dto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateSecretRequest_Validate(t *testing.T) {
	value := base64.StdEncoding.EncodeToString([]byte("hunter2"))

	t.Run("valid request", func(t *testing.T) {
		req := CreateSecretRequest{Name: "db-password", Value: value}
		assert.NoError(t, req.Validate())
	})

	t.Run("valid request with explicit tag", func(t *testing.T) {
		req := CreateSecretRequest{Name: "db-password", Value: value, VersionTag: "1.2.0"}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		req := CreateSecretRequest{Value: value}
		assert.Error(t, req.Validate())
	})

	t.Run("name with invalid characters", func(t *testing.T) {
		req := CreateSecretRequest{Name: "db/password", Value: value}
		assert.Error(t, req.Validate())
	})

	t.Run("missing value", func(t *testing.T) {
		req := CreateSecretRequest{Name: "db-password"}
		assert.Error(t, req.Validate())
	})

	t.Run("value that is not base64", func(t *testing.T) {
		req := CreateSecretRequest{Name: "db-password", Value: "not base64!"}
		assert.Error(t, req.Validate())
	})

	t.Run("invalid version tag", func(t *testing.T) {
		req := CreateSecretRequest{Name: "db-password", Value: value, VersionTag: ".hidden"}
		assert.Error(t, req.Validate())
	})
}

func TestCreateSecretVersionRequest_Validate(t *testing.T) {
	value := base64.StdEncoding.EncodeToString([]byte("hunter3"))

	t.Run("valid request", func(t *testing.T) {
		req := CreateSecretVersionRequest{VersionTag: "v2", Value: value}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing version tag", func(t *testing.T) {
		req := CreateSecretVersionRequest{Value: value}
		assert.Error(t, req.Validate())
	})

	t.Run("missing value", func(t *testing.T) {
		req := CreateSecretVersionRequest{VersionTag: "v2"}
		assert.Error(t, req.Validate())
	})
}
