package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes inspected by the repositories.
const (
	pgUniqueViolation   = "23505"
	pgUndefinedTable    = "42P01"
	pgInvalidCatalog    = "3D000"
	pgConnectionFailure = "08006"
)

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// isUnavailable reports whether err means the database or its schema cannot serve requests.
func isUnavailable(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgUndefinedTable, pgInvalidCatalog, pgConnectionFailure:
		return true
	default:
		return false
	}
}
