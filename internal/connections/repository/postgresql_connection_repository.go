// Package repository implements data persistence for vault connections.
package repository

import (
	"context"
	"database/sql"

	connectionsDomain "github.com/locksetdev/vault/internal/connections/domain"
	"github.com/locksetdev/vault/internal/database"
	apperrors "github.com/locksetdev/vault/internal/errors"
)

// PostgreSQLConnectionRepository implements VaultConnection persistence for
// PostgreSQL databases.
type PostgreSQLConnectionRepository struct {
	db *sql.DB
}

// Create inserts a new vault connection. Returns ErrConflict if the public ID
// is already taken.
func (p *PostgreSQLConnectionRepository) Create(
	ctx context.Context,
	conn *connectionsDomain.VaultConnection,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO vault_connections (id, public_id, name, provider, encrypted_config, nonce, sha256sum, dek_id, ttl, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier.ExecContext(
		ctx,
		query,
		conn.ID,
		conn.PublicID,
		conn.Name,
		conn.Provider,
		conn.Ciphertext,
		conn.Nonce,
		conn.Digest,
		conn.DekID,
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
func (p *PostgreSQLConnectionRepository) GetByPublicID(
	ctx context.Context,
	publicID string,
) (*connectionsDomain.VaultConnection, error) {
	return p.getByPublicID(ctx, publicID, false)
}

// GetByPublicIDForUpdate retrieves a vault connection with a row lock
// (SELECT FOR UPDATE). Must be called inside a transaction.
func (p *PostgreSQLConnectionRepository) GetByPublicIDForUpdate(
	ctx context.Context,
	publicID string,
) (*connectionsDomain.VaultConnection, error) {
	return p.getByPublicID(ctx, publicID, true)
}

func (p *PostgreSQLConnectionRepository) getByPublicID(
	ctx context.Context,
	publicID string,
	forUpdate bool,
) (*connectionsDomain.VaultConnection, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, public_id, name, provider, encrypted_config, nonce, sha256sum, dek_id, ttl, created_at, updated_at
			  FROM vault_connections
			  WHERE public_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var conn connectionsDomain.VaultConnection
	err := querier.QueryRowContext(ctx, query, publicID).Scan(
		&conn.ID,
		&conn.PublicID,
		&conn.Name,
		&conn.Provider,
		&conn.Ciphertext,
		&conn.Nonce,
		&conn.Digest,
		&conn.DekID,
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

	return &conn, nil
}

// Update replaces the mutable fields of a vault connection, including its
// re-sealed configuration.
func (p *PostgreSQLConnectionRepository) Update(
	ctx context.Context,
	conn *connectionsDomain.VaultConnection,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE vault_connections
			  SET name = $1,
				  provider = $2,
				  encrypted_config = $3,
				  nonce = $4,
				  sha256sum = $5,
				  dek_id = $6,
				  ttl = $7,
				  updated_at = $8
			  WHERE public_id = $9`

	result, err := querier.ExecContext(
		ctx,
		query,
		conn.Name,
		conn.Provider,
		conn.Ciphertext,
		conn.Nonce,
		conn.Digest,
		conn.DekID,
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
func (p *PostgreSQLConnectionRepository) Delete(ctx context.Context, publicID string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM vault_connections WHERE public_id = $1`

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

// NewPostgreSQLConnectionRepository creates a new PostgreSQL vault connection repository.
func NewPostgreSQLConnectionRepository(db *sql.DB) *PostgreSQLConnectionRepository {
	return &PostgreSQLConnectionRepository{db: db}
}
