package database

import (
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	apperrors "github.com/locksetdev/vault/internal/errors"
)

// PostgreSQL SQLSTATE and MySQL error numbers for constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	mysqlDuplicateEntry   = 1062
	mysqlRowIsReferenced  = 1451
	mysqlNoReferencedRow  = 1452
)

// IsUniqueViolation reports whether err is a unique constraint violation
// from either supported driver. Concurrent creators racing on the same
// name, public_id, or version tag rely on this instead of a pre-check.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if apperrors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}

	var myErr *mysql.MySQLError
	if apperrors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	return false
}

// IsForeignKeyViolation reports whether err is a foreign key violation,
// including restrict-on-delete rejections.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if apperrors.As(err, &pqErr) {
		return string(pqErr.Code) == pgForeignKeyViolation
	}

	var myErr *mysql.MySQLError
	if apperrors.As(err, &myErr) {
		return myErr.Number == mysqlRowIsReferenced || myErr.Number == mysqlNoReferencedRow
	}

	return false
}

// TranslateError maps driver-level constraint errors to domain errors.
// Unique violations become ErrConflict and foreign key violations become
// ErrReferentialIntegrity; anything else is returned wrapped with msg.
func TranslateError(err error, msg string) error {
	if err == nil {
		return nil
	}

	switch {
	case IsUniqueViolation(err):
		return apperrors.Wrap(apperrors.ErrConflict, msg)
	case IsForeignKeyViolation(err):
		return apperrors.Wrap(apperrors.ErrReferentialIntegrity, msg)
	default:
		return apperrors.Wrap(err, msg)
	}
}
