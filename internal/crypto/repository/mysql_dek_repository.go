package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
	"github.com/locksetdev/vault/internal/database"
	apperrors "github.com/locksetdev/vault/internal/errors"
)

// MySQLDekRepository implements DEK persistence for MySQL.
// Uses BINARY(16) for UUIDs and BLOB for binary data with transaction support.
type MySQLDekRepository struct {
	db *sql.DB
}

// Create inserts a new DEK into the MySQL database. Returns ErrConflict
// if the key_id is already taken.
func (m *MySQLDekRepository) Create(ctx context.Context, dek *cryptoDomain.Dek) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO data_encryption_keys (id, key_id, kek_id, encrypted_key, algorithm, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := dek.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal dek id")
	}

	kekID, err := dek.KekID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal kek id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		dek.KeyID,
		kekID,
		dek.EncryptedKey,
		dek.Algorithm,
		dek.CreatedAt,
	)
	if err != nil {
		return database.TranslateError(err, "failed to create dek")
	}
	return nil
}

// Get retrieves a DEK by its ID from the MySQL database.
func (m *MySQLDekRepository) Get(ctx context.Context, dekID uuid.UUID) (*cryptoDomain.Dek, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, key_id, kek_id, encrypted_key, algorithm, created_at
			  FROM data_encryption_keys
			  WHERE id = ?`

	id, err := dekID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal dek id")
	}

	var dek cryptoDomain.Dek
	var idBytes, kekIDBytes []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBytes,
		&dek.KeyID,
		&kekIDBytes,
		&dek.EncryptedKey,
		&dek.Algorithm,
		&dek.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, cryptoDomain.ErrDekNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get dek")
	}

	if err := dek.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal dek id")
	}

	if err := dek.KekID.UnmarshalBinary(kekIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal kek id")
	}

	return &dek, nil
}

// GetLatest retrieves the most recently created DEK, the active key for new writes.
func (m *MySQLDekRepository) GetLatest(ctx context.Context) (*cryptoDomain.Dek, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, key_id, kek_id, encrypted_key, algorithm, created_at
			  FROM data_encryption_keys
			  ORDER BY id DESC
			  LIMIT 1`

	var dek cryptoDomain.Dek
	var idBytes, kekIDBytes []byte

	err := querier.QueryRowContext(ctx, query).Scan(
		&idBytes,
		&dek.KeyID,
		&kekIDBytes,
		&dek.EncryptedKey,
		&dek.Algorithm,
		&dek.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, cryptoDomain.ErrDekNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get latest dek")
	}

	if err := dek.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal dek id")
	}

	if err := dek.KekID.UnmarshalBinary(kekIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal kek id")
	}

	return &dek, nil
}

// NewMySQLDekRepository creates a new MySQL DEK repository.
func NewMySQLDekRepository(db *sql.DB) *MySQLDekRepository {
	return &MySQLDekRepository{db: db}
}
