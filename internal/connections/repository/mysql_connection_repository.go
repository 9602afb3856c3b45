package repository

import (
	"context"
	"database/sql"

	connectionsDomain "github.com/locksetdev/vault/internal/connections/domain"
	"github.com/locksetdev/vault/internal/database"
	apperrors "github.com/locksetdev/vault/internal/errors"
)

// MySQLConnectionRepository implements VaultConnection persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLConnectionRepository struct {
	db *sql.DB
}

// Create inserts a new vault connection. Returns ErrConflict if the public ID
// is already taken.
func (m *MySQLConnectionRepository) Create(
	ctx context.Context,
	conn *connectionsDomain.VaultConnection,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO vault_connections (id, public_id, name, provider, encrypted_config, nonce, sha256sum, dek_id, ttl, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := conn.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal connection id")
	}

	dekID, err := conn.DekID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal dek id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		conn.PublicID,
		conn.Name,
		conn.Provider,
		conn.Ciphertext,
		conn.Nonce,
		conn.Digest,
		dekID,
		conn.TTL,
		conn.CreatedAt,
		conn.UpdatedAt,
	)
	if err != nil {
		return database.TranslateError(err, "failed to create vault connection")
	}
	return nil
}

// GetByPublicID retrieves a vault connection by its public identifier.
func (m *MySQLConnectionRepository) GetByPublicID(
	ctx context.Context,
	publicID string,
) (*connectionsDomain.VaultConnection, error) {
	return m.getByPublicID(ctx, publicID, false)
}

// GetByPublicIDForUpdate retrieves a vault connection with a row lock
// (SELECT FOR UPDATE). Must be called inside a transaction.
func (m *MySQLConnectionRepository) GetByPublicIDForUpdate(
	ctx context.Context,
	publicID string,
) (*connectionsDomain.VaultConnection, error) {
	return m.getByPublicID(ctx, publicID, true)
}

func (m *MySQLConnectionRepository) getByPublicID(
	ctx context.Context,
	publicID string,
	forUpdate bool,
) (*connectionsDomain.VaultConnection, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, public_id, name, provider, encrypted_config, nonce, sha256sum, dek_id, ttl, created_at, updated_at
			  FROM vault_connections
			  WHERE public_id = ?`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var conn connectionsDomain.VaultConnection
	var idBytes, dekIDBytes []byte

	err := querier.QueryRowContext(ctx, query, publicID).Scan(
		&idBytes,
		&conn.PublicID,
		&conn.Name,
		&conn.Provider,
		&conn.Ciphertext,
		&conn.Nonce,
		&conn.Digest,
		&dekIDBytes,
		&conn.TTL,
		&conn.CreatedAt,
		&conn.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get vault connection")
	}

	if err := conn.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal connection id")
	}

	if err := conn.DekID.UnmarshalBinary(dekIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal dek id")
	}

	return &conn, nil
}

// Update replaces the mutable fields of a vault connection, including its
// re-sealed configuration.
func (m *MySQLConnectionRepository) Update(
	ctx context.Context,
	conn *connectionsDomain.VaultConnection,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE vault_connections
			  SET name = ?,
				  provider = ?,
				  encrypted_config = ?,
				  nonce = ?,
				  sha256sum = ?,
				  dek_id = ?,
				  ttl = ?,
				  updated_at = ?
			  WHERE public_id = ?`

	dekID, err := conn.DekID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal dek id")
	}

	result, err := querier.ExecContext(
		ctx,
		query,
		conn.Name,
		conn.Provider,
		conn.Ciphertext,
		conn.Nonce,
		conn.Digest,
		dekID,
		conn.TTL,
		conn.UpdatedAt,
		conn.PublicID,
	)
	if err != nil {
		return database.TranslateError(err, "failed to update vault connection")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete removes a vault connection. Dependent secrets keep their rows with
// the connection reference nulled by the schema's ON DELETE SET NULL.
func (m *MySQLConnectionRepository) Delete(ctx context.Context, publicID string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM vault_connections WHERE public_id = ?`

	result, err := querier.ExecContext(ctx, query, publicID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete vault connection")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// NewMySQLConnectionRepository creates a new MySQL vault connection repository.
func NewMySQLConnectionRepository(db *sql.DB) *MySQLConnectionRepository {
	return &MySQLConnectionRepository{db: db}
}
