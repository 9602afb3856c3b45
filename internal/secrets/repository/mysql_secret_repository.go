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

// MySQLSecretRepository implements Secret persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLSecretRepository struct {
	db *sql.DB
}

// marshalOptionalUUID converts a nullable UUID to its binary driver value.
func marshalOptionalUUID(id *uuid.UUID) (interface{}, error) {
	if id == nil {
		return nil, nil
	}
	return id.MarshalBinary()
}

// unmarshalOptionalUUID converts nullable binary column bytes back to a UUID.
func unmarshalOptionalUUID(b []byte) (*uuid.UUID, error) {
	if b == nil {
		return nil, nil
	}
	var id uuid.UUID
	if err := id.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return &id, nil
}

// Create inserts a new secret into the MySQL database. Returns ErrConflict
// if the name is already taken.
func (m *MySQLSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO secrets (id, name, current_version, previous_version, vault_connection_id, expire_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := secret.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal secret id")
	}

	connectionID, err := marshalOptionalUUID(secret.VaultConnectionID)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal vault connection id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		secret.Name,
		secret.CurrentVersion,
		secret.PreviousVersion,
		connectionID,
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
func (m *MySQLSecretRepository) GetByName(
	ctx context.Context,
	name string,
) (*secretsDomain.Secret, error) {
	return m.getByName(ctx, name, false)
}

// GetByNameForUpdate retrieves a secret by name with a row lock (SELECT FOR
// UPDATE). Must be called inside a transaction.
func (m *MySQLSecretRepository) GetByNameForUpdate(
	ctx context.Context,
	name string,
) (*secretsDomain.Secret, error) {
	return m.getByName(ctx, name, true)
}

func (m *MySQLSecretRepository) getByName(
	ctx context.Context,
	name string,
	forUpdate bool,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, current_version, previous_version, vault_connection_id, expire_at, created_at, updated_at
			  FROM secrets
			  WHERE name = ?`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var secret secretsDomain.Secret
	var idBytes, connectionIDBytes []byte

	err := querier.QueryRowContext(ctx, query, name).Scan(
		&idBytes,
		&secret.Name,
		&secret.CurrentVersion,
		&secret.PreviousVersion,
		&connectionIDBytes,
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

	if err := secret.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal secret id")
	}

	secret.VaultConnectionID, err = unmarshalOptionalUUID(connectionIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal vault connection id")
	}

	return &secret, nil
}

// UpdateVersionPointers swaps the current/previous version pointers of a secret.
func (m *MySQLSecretRepository) UpdateVersionPointers(
	ctx context.Context,
	secretID uuid.UUID,
	current, previous *string,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE secrets
			  SET current_version = ?,
				  previous_version = ?,
				  updated_at = ?
			  WHERE id = ?`

	id, err := secretID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal secret id")
	}

	result, err := querier.ExecContext(ctx, query, current, previous, time.Now().UTC(), id)
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
func (m *MySQLSecretRepository) Delete(ctx context.Context, secretID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM secrets WHERE id = ?`

	id, err := secretID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal secret id")
	}

	result, err := querier.ExecContext(ctx, query, id)
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

// List retrieves secrets ordered by name with pagination.
func (m *MySQLSecretRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, current_version, previous_version, vault_connection_id, expire_at, created_at, updated_at
			  FROM secrets
			  ORDER BY name
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list secrets")
	}
	defer func() {
		_ = rows.Close()
	}()

	var secrets []*secretsDomain.Secret
	for rows.Next() {
		var secret secretsDomain.Secret
		var idBytes, connectionIDBytes []byte

		err := rows.Scan(
			&idBytes,
			&secret.Name,
			&secret.CurrentVersion,
			&secret.PreviousVersion,
			&connectionIDBytes,
			&secret.ExpireAt,
			&secret.CreatedAt,
			&secret.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if err := secret.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal secret id")
		}

		secret.VaultConnectionID, err = unmarshalOptionalUUID(connectionIDBytes)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal vault connection id")
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
func (m *MySQLSecretRepository) CreateVersion(
	ctx context.Context,
	version *secretsDomain.SecretVersion,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO secret_versions (id, secret_id, version_tag, encrypted_secret, nonce, sha256sum, dek_id, deleted, deleted_at, expire_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := version.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal version id")
	}

	secretID, err := version.SecretID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal secret id")
	}

	dekID, err := version.DekID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal dek id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		secretID,
		version.VersionTag,
		version.Ciphertext,
		version.Nonce,
		version.Digest,
		dekID,
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
func (m *MySQLSecretRepository) GetVersion(
	ctx context.Context,
	secretID uuid.UUID,
	versionTag string,
) (*secretsDomain.SecretVersion, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, secret_id, version_tag, encrypted_secret, nonce, sha256sum, dek_id, deleted, deleted_at, expire_at, created_at
			  FROM secret_versions
			  WHERE secret_id = ? AND version_tag = ?`

	sid, err := secretID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal secret id")
	}

	var version secretsDomain.SecretVersion
	var idBytes, secretIDBytes, dekIDBytes []byte

	err = querier.QueryRowContext(ctx, query, sid, versionTag).Scan(
		&idBytes,
		&secretIDBytes,
		&version.VersionTag,
		&version.Ciphertext,
		&version.Nonce,
		&version.Digest,
		&dekIDBytes,
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

	if err := version.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal version id")
	}

	if err := version.SecretID.UnmarshalBinary(secretIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal secret id")
	}

	if err := version.DekID.UnmarshalBinary(dekIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal dek id")
	}

	return &version, nil
}

// SoftDeleteVersion marks a version as deleted without removing the row.
func (m *MySQLSecretRepository) SoftDeleteVersion(
	ctx context.Context,
	versionID uuid.UUID,
	deletedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE secret_versions
			  SET deleted = TRUE,
				  deleted_at = ?
			  WHERE id = ? AND deleted = FALSE`

	id, err := versionID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal version id")
	}

	result, err := querier.ExecContext(ctx, query, deletedAt, id)
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

// NewMySQLSecretRepository creates a new MySQL secret repository.
func NewMySQLSecretRepository(db *sql.DB) *MySQLSecretRepository {
	return &MySQLSecretRepository{db: db}
}
