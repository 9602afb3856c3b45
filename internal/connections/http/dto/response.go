package dto

import (
	"encoding/json"
	"time"

	connectionsDomain "github.com/locksetdev/vault/internal/connections/domain"
)

// ConnectionResponse carries connection metadata in API responses. The
// configuration document is never included here.
type ConnectionResponse struct {
	PublicID  string    `json:"public_id"`
	Name      string    `json:"name"`
	Provider  string    `json:"provider"`
	TTL       int64     `json:"ttl"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetConnectionResponse adds the decrypted configuration document.
type GetConnectionResponse struct {
	ConnectionResponse
	Config json.RawMessage `json:"config"`
}

// MapConnectionToResponse converts a domain connection to its metadata
// response.
func MapConnectionToResponse(conn *connectionsDomain.VaultConnection) ConnectionResponse {
	return ConnectionResponse{
		PublicID:  conn.PublicID,
		Name:      conn.Name,
		Provider:  conn.Provider,
		TTL:       conn.TTL,
		CreatedAt: conn.CreatedAt,
		UpdatedAt: conn.UpdatedAt,
	}
}

// MapConnectionToGetResponse builds the decrypted configuration response.
// The caller owns zeroing conn.Config after the response is written; the
// raw message aliases it, so encode before zeroing.
func MapConnectionToGetResponse(conn *connectionsDomain.VaultConnection) GetConnectionResponse {
	return GetConnectionResponse{
		ConnectionResponse: MapConnectionToResponse(conn),
		Config:             json.RawMessage(conn.Config),
	}
}
