// Package repository implements data persistence for secret management.
// Repositories support both PostgreSQL and MySQL with pointer-based
// versioning and soft deletion of individual versions.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/locksetdev/vault/internal/database"
	apperrors "github.com/locksetdev/vault/internal/errors"
	secretsDomain "github.com/locksetdev/vault/internal/secrets/domain"
)

// PostgreSQLSecretRepository implements Secret persistence for PostgreSQL databases.
type PostgreSQLSecretRepository struct {
	db *sql.DB
}

// Create inserts a new secret into the PostgreSQL database. Returns
// ErrConflict if the name is already taken.
func (p *PostgreSQLSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO secrets (id, name, current_version, previous_version, vault_connection_id, expire_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		secret.ID,
		secret.Name,
		secret.CurrentVersion,
		secret.PreviousVersion,
		secret.VaultConnectionID,
		secret.ExpireAt,
		secret.CreatedAt,
		secret.UpdatedAt,
	)
	if err != nil {
		return database.TranslateError(err, "failed to create secret")
	}
	return nil
}

// GetByName retrieves a secret by its unique name.
func (p *PostgreSQLSecretRepository) GetByName(
	ctx context.Context,
	name string,
) (*secretsDomain.Secret, error) {
	return p.getByName(ctx, name, false)
}

// GetByNameForUpdate retrieves a secret by name with a row lock (SELECT FOR
// UPDATE). Must be called inside a transaction; the lock serializes
// concurrent version writes for the same secret until commit.
func (p *PostgreSQLSecretRepository) GetByNameForUpdate(
	ctx context.Context,
	name string,
) (*secretsDomain.Secret, error) {
	return p.getByName(ctx, name, true)
}

func (p *PostgreSQLSecretRepository) getByName(
	ctx context.Context,
	name string,
	forUpdate bool,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, current_version, previous_version, vault_connection_id, expire_at, created_at, updated_at
			  FROM secrets
			  WHERE name = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var secret secretsDomain.Secret
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&secret.ID,
		&secret.Name,
		&secret.CurrentVersion,
		&secret.PreviousVersion,
		&secret.VaultConnectionID,
		&secret.ExpireAt,
		&secret.CreatedAt,
		&secret.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get secret by name")
	}

	return &secret, nil
}

// UpdateVersionPointers swaps the current/previous version pointers of a
// secret. Called inside the same transaction that inserted the new version.
func (p *PostgreSQLSecretRepository) UpdateVersionPointers(
	ctx context.Context,
	secretID uuid.UUID,
	current, previous *string,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE secrets
			  SET current_version = $1,
				  previous_version = $2,
				  updated_at = $3
			  WHERE id = $4`

	result, err := querier.ExecContext(ctx, query, current, previous, time.Now().UTC(), secretID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update version pointers")
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

// Delete removes a secret and, via cascade, all of its versions.
func (p *PostgreSQLSecretRepository) Delete(ctx context.Context, secretID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM secrets WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, secretID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete secret")
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

// List retrieves secrets ordered by name with pagination. Values are not
// included; only metadata rows are returned.
func (p *PostgreSQLSecretRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, current_version, previous_version, vault_connection_id, expire_at, created_at, updated_at
			  FROM secrets
			  ORDER BY name
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list secrets")
	}
	defer func() {
		_ = rows.Close()
	}()

	var secrets []*secretsDomain.Secret
	for rows.Next() {
		var secret secretsDomain.Secret

		err := rows.Scan(
			&secret.ID,
			&secret.Name,
			&secret.CurrentVersion,
			&secret.PreviousVersion,
			&secret.VaultConnectionID,
			&secret.ExpireAt,
			&secret.CreatedAt,
			&secret.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		secrets = append(secrets, &secret)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return secrets, nil
}

// CreateVersion inserts a new secret version. Returns ErrConflict if the
// version tag already exists for the secret.
func (p *PostgreSQLSecretRepository) CreateVersion(
	ctx context.Context,
	version *secretsDomain.SecretVersion,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO secret_versions (id, secret_id, version_tag, encrypted_secret, nonce, sha256sum, dek_id, deleted, deleted_at, expire_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier.ExecContext(
		ctx,
		query,
		version.ID,
		version.SecretID,
		version.VersionTag,
		version.Ciphertext,
		version.Nonce,
		version.Digest,
		version.DekID,
		version.Deleted,
		version.DeletedAt,
		version.ExpireAt,
		version.CreatedAt,
	)
	if err != nil {
		return database.TranslateError(err, "failed to create secret version")
	}
	return nil
}

// GetVersion retrieves a secret version by owning secret ID and tag.
func (p *PostgreSQLSecretRepository) GetVersion(
	ctx context.Context,
	secretID uuid.UUID,
	versionTag string,
) (*secretsDomain.SecretVersion, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, secret_id, version_tag, encrypted_secret, nonce, sha256sum, dek_id, deleted, deleted_at, expire_at, created_at
			  FROM secret_versions
			  WHERE secret_id = $1 AND version_tag = $2`

	var version secretsDomain.SecretVersion
	err := querier.QueryRowContext(ctx, query, secretID, versionTag).Scan(
		&version.ID,
		&version.SecretID,
		&version.VersionTag,
		&version.Ciphertext,
		&version.Nonce,
		&version.Digest,
		&version.DekID,
		&version.Deleted,
		&version.DeletedAt,
		&version.ExpireAt,
		&version.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get secret version")
	}

	return &version, nil
}

// SoftDeleteVersion marks a version as deleted without removing the row.
func (p *PostgreSQLSecretRepository) SoftDeleteVersion(
	ctx context.Context,
	versionID uuid.UUID,
	deletedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE secret_versions
			  SET deleted = TRUE,
				  deleted_at = $1
			  WHERE id = $2 AND deleted = FALSE`

	result, err := querier.ExecContext(ctx, query, deletedAt, versionID)
	if err != nil {
		return apperrors.Wrap(err, "failed to soft delete secret version")
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

// NewPostgreSQLSecretRepository creates a new PostgreSQL secret repository.
func NewPostgreSQLSecretRepository(db *sql.DB) *PostgreSQLSecretRepository {
	return &PostgreSQLSecretRepository{db: db}
}
