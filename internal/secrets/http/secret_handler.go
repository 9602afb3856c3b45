// Package http provides HTTP handlers for secret management operations.
// Payloads are encrypted at rest with envelope encryption and versioned
// through current/previous pointers.
package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
	"github.com/locksetdev/vault/internal/httputil"
	"github.com/locksetdev/vault/internal/secrets/http/dto"
	secretsUseCase "github.com/locksetdev/vault/internal/secrets/usecase"
	customValidation "github.com/locksetdev/vault/internal/validation"
)

// SecretHandler handles HTTP requests for secret management operations.
type SecretHandler struct {
	secretUseCase secretsUseCase.SecretUseCase
	logger        *slog.Logger
}

// NewSecretHandler creates a new secret handler.
func NewSecretHandler(secretUseCase secretsUseCase.SecretUseCase, logger *slog.Logger) *SecretHandler {
	return &SecretHandler{
		secretUseCase: secretUseCase,
		logger:        logger,
	}
}

// CreateHandler creates a new secret together with its first version.
// POST /v1/secrets
// Returns 201 Created with secret and version metadata (never the payload).
func (h *SecretHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	value, err := base64.StdEncoding.DecodeString(req.Value)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 value: %w", err), h.logger)
		return
	}
	// The sealed copy is all that leaves the use case.
	defer cryptoDomain.Zero(value)

	input := &secretsUseCase.CreateSecretInput{
		Name:            req.Name,
		Value:           value,
		VersionTag:      req.VersionTag,
		ExpireAt:        req.ExpireAt,
		VersionExpireAt: req.VersionExpireAt,
	}

	if req.VaultConnectionID != "" {
		connectionID, parseErr := uuid.Parse(req.VaultConnectionID)
		if parseErr != nil {
			httputil.HandleValidationErrorGin(
				c,
				fmt.Errorf("invalid vault_connection_id: must be a UUID"),
				h.logger,
			)
			return
		}
		input.VaultConnectionID = &connectionID
	}

	secret, version, err := h.secretUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapToCreateResponse(secret, version))
}

// CreateVersionHandler adds a version to an existing secret and makes it
// current.
// POST /v1/secrets/:name/versions
// Returns 201 Created with version metadata.
func (h *SecretHandler) CreateVersionHandler(c *gin.Context) {
	name, ok := h.secretName(c)
	if !ok {
		return
	}

	var req dto.CreateSecretVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	value, err := base64.StdEncoding.DecodeString(req.Value)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 value: %w", err), h.logger)
		return
	}
	defer cryptoDomain.Zero(value)

	input := &secretsUseCase.CreateVersionInput{
		VersionTag: req.VersionTag,
		Value:      value,
		ExpireAt:   req.ExpireAt,
	}

	version, err := h.secretUseCase.CreateVersion(c.Request.Context(), name, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapVersionToResponse(version))
}

// GetHandler retrieves and decrypts the current version of a secret.
// GET /v1/secrets/:name
// Returns 200 OK with the base64 payload. SECURITY: plaintext is zeroed
// after the response is written.
func (h *SecretHandler) GetHandler(c *gin.Context) {
	name, ok := h.secretName(c)
	if !ok {
		return
	}

	secret, version, err := h.secretUseCase.GetCurrent(c.Request.Context(), name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	defer cryptoDomain.Zero(version.Plaintext)

	c.JSON(http.StatusOK, dto.MapToGetResponse(secret, version))
}

// GetVersionHandler retrieves and decrypts a specific version by tag.
// GET /v1/secrets/:name/versions/:tag
// Returns 200 OK with the base64 payload. SECURITY: plaintext is zeroed
// after the response is written.
func (h *SecretHandler) GetVersionHandler(c *gin.Context) {
	name, ok := h.secretName(c)
	if !ok {
		return
	}
	tag, ok := h.versionTag(c)
	if !ok {
		return
	}

	secret, version, err := h.secretUseCase.GetVersion(c.Request.Context(), name, tag)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	defer cryptoDomain.Zero(version.Plaintext)

	c.JSON(http.StatusOK, dto.MapToGetResponse(secret, version))
}

// DeleteHandler removes a secret and all of its versions.
// DELETE /v1/secrets/:name
// Returns 204 No Content.
func (h *SecretHandler) DeleteHandler(c *gin.Context) {
	name, ok := h.secretName(c)
	if !ok {
		return
	}

	if err := h.secretUseCase.Delete(c.Request.Context(), name); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// DeleteVersionHandler soft deletes a single version of a secret.
// DELETE /v1/secrets/:name/versions/:tag
// Returns 204 No Content.
func (h *SecretHandler) DeleteVersionHandler(c *gin.Context) {
	name, ok := h.secretName(c)
	if !ok {
		return
	}
	tag, ok := h.versionTag(c)
	if !ok {
		return
	}

	if err := h.secretUseCase.SoftDeleteVersion(c.Request.Context(), name, tag); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListHandler retrieves secret metadata with pagination support.
// GET /v1/secrets?offset=0&limit=50
// Returns 200 OK with a list that never includes payloads.
func (h *SecretHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	secrets, err := h.secretUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSecretsToListResponse(secrets))
}

// secretName extracts and validates the :name path parameter. Writes the
// error response itself when validation fails.
func (h *SecretHandler) secretName(c *gin.Context) (string, bool) {
	name := c.Param("name")
	if err := validation.Validate(name, validation.Required, customValidation.SecretName); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return "", false
	}
	return name, true
}

// versionTag extracts and validates the :tag path parameter.
func (h *SecretHandler) versionTag(c *gin.Context) (string, bool) {
	tag := c.Param("tag")
	if err := validation.Validate(tag, validation.Required, customValidation.VersionTag); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return "", false
	}
	return tag, true
}
