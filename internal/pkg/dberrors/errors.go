// Package dberrors classifies Postgres errors
package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes
const (
	CodeUniqueViolation = "23505"
	CodeUndefinedTable  = "42P01"
)

// ExportsPrimaryKey is the primary key constraint of document_exports
const ExportsPrimaryKey = "document_exports_pkey"

func pgCode(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsDuplicateConstraintError checks if err is a unique violation of constraintName.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	pgErr, ok := pgCode(err)
	return ok && pgErr.Code == CodeUniqueViolation && pgErr.ConstraintName == constraintName
}

// IsMissingTable reports whether err was caused by a table that does not exist,
// e.g. when migrations were not applied.
func IsMissingTable(err error) bool {
	pgErr, ok := pgCode(err)
	return ok && pgErr.Code == CodeUndefinedTable
}
