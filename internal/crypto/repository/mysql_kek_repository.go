package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
	"github.com/locksetdev/vault/internal/database"
	apperrors "github.com/locksetdev/vault/internal/errors"
)

// MySQLKekRepository implements KEK persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLKekRepository struct {
	db *sql.DB
}

// Create inserts a new KEK into the MySQL database.
func (m *MySQLKekRepository) Create(ctx context.Context, kek *cryptoDomain.Kek) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO key_encryption_keys (id, kms_key, created_at)
			  VALUES (?, ?, ?)`

	id, err := kek.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal kek id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		kek.KmsKey,
		kek.CreatedAt,
	)
	if err != nil {
		return database.TranslateError(err, "failed to create kek")
	}
	return nil
}

// Get retrieves a KEK by its ID from the MySQL database.
func (m *MySQLKekRepository) Get(ctx context.Context, kekID uuid.UUID) (*cryptoDomain.Kek, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, kms_key, created_at
			  FROM key_encryption_keys
			  WHERE id = ?`

	id, err := kekID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal kek id")
	}

	var kek cryptoDomain.Kek
	var idBytes []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBytes,
		&kek.KmsKey,
		&kek.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, cryptoDomain.ErrKekNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get kek")
	}

	if err := kek.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal kek id")
	}

	return &kek, nil
}

// GetLatest retrieves the most recently created KEK.
func (m *MySQLKekRepository) GetLatest(ctx context.Context) (*cryptoDomain.Kek, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, kms_key, created_at
			  FROM key_encryption_keys
			  ORDER BY id DESC
			  LIMIT 1`

	var kek cryptoDomain.Kek
	var idBytes []byte

	err := querier.QueryRowContext(ctx, query).Scan(
		&idBytes,
		&kek.KmsKey,
		&kek.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, cryptoDomain.ErrKekNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get latest kek")
	}

	if err := kek.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal kek id")
	}

	return &kek, nil
}

// List retrieves all KEKs ordered by creation time descending (newest first).
func (m *MySQLKekRepository) List(ctx context.Context) ([]*cryptoDomain.Kek, error) {
	querier := database.GetTx(ctx, m.db)

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
		var idBytes []byte

		err := rows.Scan(
			&idBytes,
			&kek.KmsKey,
			&kek.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if err := kek.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal kek id")
		}

		keks = append(keks, &kek)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return keks, nil
}

// Delete removes a KEK from the MySQL database. Returns ErrReferentialIntegrity
// if any DEK still references the KEK and ErrKekNotFound if no row matched.
func (m *MySQLKekRepository) Delete(ctx context.Context, kekID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM key_encryption_keys WHERE id = ?`

	id, err := kekID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal kek id")
	}

	result, err := querier.ExecContext(ctx, query, id)
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

// NewMySQLKekRepository creates a new MySQL KEK repository.
func NewMySQLKekRepository(db *sql.DB) *MySQLKekRepository {
	return &MySQLKekRepository{db: db}
}
