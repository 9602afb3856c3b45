// Package repository implements data persistence for cryptographic key management.
//
// This package provides repository implementations for storing and retrieving
// Key Encryption Keys (KEKs) and Data Encryption Keys (DEKs) in PostgreSQL and
// MySQL databases. Repositories follow the Repository pattern and support both
// direct database operations and transactional operations.
//
// # Database Support
//
// Each repository type has two implementations:
//   - PostgreSQL: Uses native UUID type and BYTEA for binary data
//   - MySQL: Uses BINARY(16) for UUIDs and BLOB for binary data
//
// # Transaction Support
//
// All repositories support transaction-aware operations via database.GetTx(),
// enabling atomic multi-step operations such as key rotation. When called within
// a transaction context, repositories automatically use the transaction connection.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
	"github.com/locksetdev/vault/internal/database"
	apperrors "github.com/locksetdev/vault/internal/errors"
)

// PostgreSQLKekRepository implements KEK persistence for PostgreSQL databases.
//
// KEK rows are write-once: there is no update operation. Deletion is guarded
// by a restrict-on-delete constraint from data_encryption_keys, so a KEK that
// still wraps DEKs cannot be removed.
type PostgreSQLKekRepository struct {
	db *sql.DB
}

// Create inserts a new KEK into the PostgreSQL database.
func (p *PostgreSQLKekRepository) Create(ctx context.Context, kek *cryptoDomain.Kek) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO key_encryption_keys (id, kms_key, created_at)
			  VALUES ($1, $2, $3)`

	_, err := querier.ExecContext(
		ctx,
		query,
		kek.ID,
		kek.KmsKey,
		kek.CreatedAt,
	)
	if err != nil {
		return database.TranslateError(err, "failed to create kek")
	}
	return nil
}

// Get retrieves a KEK by its ID from the PostgreSQL database.
func (p *PostgreSQLKekRepository) Get(ctx context.Context, kekID uuid.UUID) (*cryptoDomain.Kek, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, kms_key, created_at
			  FROM key_encryption_keys
			  WHERE id = $1`

	var kek cryptoDomain.Kek
	err := querier.QueryRowContext(ctx, query, kekID).Scan(
		&kek.ID,
		&kek.KmsKey,
		&kek.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, cryptoDomain.ErrKekNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get kek")
	}

	return &kek, nil
}

// GetLatest retrieves the most recently created KEK. New DEKs are wrapped
// under this KEK. UUIDv7 IDs are time-ordered, so ordering by id descending
// yields creation order.
func (p *PostgreSQLKekRepository) GetLatest(ctx context.Context) (*cryptoDomain.Kek, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, kms_key, created_at
			  FROM key_encryption_keys
			  ORDER BY id DESC
			  LIMIT 1`

	var kek cryptoDomain.Kek
	err := querier.QueryRowContext(ctx, query).Scan(
		&kek.ID,
		&kek.KmsKey,
		&kek.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, cryptoDomain.ErrKekNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get latest kek")
	}

	return &kek, nil
}

// List retrieves all KEKs ordered by creation time descending (newest first).
func (p *PostgreSQLKekRepository) List(ctx context.Context) ([]*cryptoDomain.Kek, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, kms_key, created_at
			  FROM key_encryption_keys
			  ORDER BY id DESC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list keks")
	}
	defer func() {
		_ = rows.Close()
	}()

	var keks []*cryptoDomain.Kek
	for rows.Next() {
		var kek cryptoDomain.Kek

		err := rows.Scan(
			&kek.ID,
			&kek.KmsKey,
			&kek.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		keks = append(keks, &kek)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return keks, nil
}

// Delete removes a KEK from the PostgreSQL database. Returns
// ErrReferentialIntegrity if any DEK still references the KEK and
// ErrKekNotFound if no row matched.
func (p *PostgreSQLKekRepository) Delete(ctx context.Context, kekID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM key_encryption_keys WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, kekID)
	if err != nil {
		return database.TranslateError(err, "failed to delete kek")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return cryptoDomain.ErrKekNotFound
	}

	return nil
}

// NewPostgreSQLKekRepository creates a new PostgreSQL KEK repository instance.
func NewPostgreSQLKekRepository(db *sql.DB) *PostgreSQLKekRepository {
	return &PostgreSQLKekRepository{db: db}
}
