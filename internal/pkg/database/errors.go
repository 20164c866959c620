package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUniqueViolation is returned by non-PostgreSQL stores when an insert
// breaks a uniqueness rule.
var ErrUniqueViolation = errors.New("unique constraint violation")

const (
	uniqueViolationCode       = "23505"
	invalidTextRepresentation = "22P02"
)

// IsUniqueViolation reports whether err is a unique constraint failure from
// PostgreSQL or ErrUniqueViolation from another store.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, ErrUniqueViolation) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return false
}

// IsInvalidTextRepresentation reports whether PostgreSQL rejected a value
// it could not parse, such as a malformed uuid.
func IsInvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}
