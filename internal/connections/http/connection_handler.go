// Package http provides HTTP handlers for vault connection management.
// Connection configurations are sealed at rest like secret payloads.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	"github.com/locksetdev/vault/internal/connections/http/dto"
	connectionsUseCase "github.com/locksetdev/vault/internal/connections/usecase"
	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
	"github.com/locksetdev/vault/internal/httputil"
	customValidation "github.com/locksetdev/vault/internal/validation"
)

// ConnectionHandler handles HTTP requests for vault connection operations.
type ConnectionHandler struct {
	connectionUseCase connectionsUseCase.ConnectionUseCase
	logger            *slog.Logger
}

// NewConnectionHandler creates a new connection handler.
func NewConnectionHandler(connectionUseCase connectionsUseCase.ConnectionUseCase, logger *slog.Logger) *ConnectionHandler {
	return &ConnectionHandler{
		connectionUseCase: connectionUseCase,
		logger:            logger,
	}
}

// CreateHandler registers a vault connection.
// POST /v1/vault-connections
// Returns 201 Created with connection metadata (never the configuration).
func (h *ConnectionHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &connectionsUseCase.CreateConnectionInput{
		PublicID: req.PublicID,
		Name:     req.Name,
		Provider: req.Provider,
		Config:   req.Config,
		TTL:      req.TTL,
	}

	conn, err := h.connectionUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapConnectionToResponse(conn))
}

// GetHandler retrieves and decrypts a vault connection.
// GET /v1/vault-connections/:public_id
// Returns 200 OK with the configuration document. SECURITY: the decrypted
// configuration is zeroed after the response is written.
func (h *ConnectionHandler) GetHandler(c *gin.Context) {
	publicID, ok := h.publicID(c)
	if !ok {
		return
	}

	conn, err := h.connectionUseCase.Get(c.Request.Context(), publicID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	defer cryptoDomain.Zero(conn.Config)

	c.JSON(http.StatusOK, dto.MapConnectionToGetResponse(conn))
}

// UpdateHandler replaces a connection's document and re-seals it under the
// active DEK, resetting the TTL clock.
// PUT /v1/vault-connections/:public_id
// Returns 200 OK with connection metadata.
func (h *ConnectionHandler) UpdateHandler(c *gin.Context) {
	publicID, ok := h.publicID(c)
	if !ok {
		return
	}

	var req dto.UpdateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &connectionsUseCase.UpdateConnectionInput{
		Name:     req.Name,
		Provider: req.Provider,
		Config:   req.Config,
		TTL:      req.TTL,
	}

	conn, err := h.connectionUseCase.Update(c.Request.Context(), publicID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapConnectionToResponse(conn))
}

// DeleteHandler removes a vault connection. Secrets provisioned from it
// keep their rows but lose the reference.
// DELETE /v1/vault-connections/:public_id
// Returns 204 No Content.
func (h *ConnectionHandler) DeleteHandler(c *gin.Context) {
	publicID, ok := h.publicID(c)
	if !ok {
		return
	}

	if err := h.connectionUseCase.Delete(c.Request.Context(), publicID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// publicID extracts and validates the :public_id path parameter. Writes the
// error response itself when validation fails.
func (h *ConnectionHandler) publicID(c *gin.Context) (string, bool) {
	publicID := c.Param("public_id")
	if err := validation.Validate(publicID, validation.Required, customValidation.PublicID); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return "", false
	}
	return publicID, true
}
