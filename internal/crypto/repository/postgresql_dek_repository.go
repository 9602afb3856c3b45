package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
	"github.com/locksetdev/vault/internal/database"
	apperrors "github.com/locksetdev/vault/internal/errors"
)

// PostgreSQLDekRepository implements DEK persistence for PostgreSQL.
// Uses native UUID and BYTEA types with transaction support via database.GetTx().
type PostgreSQLDekRepository struct {
	db *sql.DB
}

// Create inserts a new DEK into the PostgreSQL database. Returns ErrConflict
// if the key_id is already taken.
func (p *PostgreSQLDekRepository) Create(ctx context.Context, dek *cryptoDomain.Dek) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO data_encryption_keys (id, key_id, kek_id, encrypted_key, algorithm, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		dek.ID,
		dek.KeyID,
		dek.KekID,
		dek.EncryptedKey,
		dek.Algorithm,
		dek.CreatedAt,
	)
	if err != nil {
		return database.TranslateError(err, "failed to create dek")
	}
	return nil
}

// Get retrieves a DEK by its ID from the PostgreSQL database.
func (p *PostgreSQLDekRepository) Get(
	ctx context.Context,
	dekID uuid.UUID,
) (*cryptoDomain.Dek, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, key_id, kek_id, encrypted_key, algorithm, created_at
			  FROM data_encryption_keys
			  WHERE id = $1`

	var dek cryptoDomain.Dek
	err := querier.QueryRowContext(ctx, query, dekID).Scan(
		&dek.ID,
		&dek.KeyID,
		&dek.KekID,
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

	return &dek, nil
}

// GetLatest retrieves the most recently created DEK, which is the active key
// for new writes. UUIDv7 IDs order by creation time.
func (p *PostgreSQLDekRepository) GetLatest(ctx context.Context) (*cryptoDomain.Dek, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, key_id, kek_id, encrypted_key, algorithm, created_at
			  FROM data_encryption_keys
			  ORDER BY id DESC
			  LIMIT 1`

	var dek cryptoDomain.Dek
	err := querier.QueryRowContext(ctx, query).Scan(
		&dek.ID,
		&dek.KeyID,
		&dek.KekID,
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

	return &dek, nil
}

// NewPostgreSQLDekRepository creates a new PostgreSQL DEK repository.
func NewPostgreSQLDekRepository(db *sql.DB) *PostgreSQLDekRepository {
	return &PostgreSQLDekRepository{db: db}
}
