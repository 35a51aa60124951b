package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"

	// Statement errors: the generated SQL references something the query
	// cannot see, e.g. a column of a table that is not joined.
	undefinedTableCode  = "42P01"
	undefinedColumnCode = "42703"
	ambiguousColumnCode = "42702"
	groupingErrorCode   = "42803"
)

// MapError maps a database error to the matching store sentinel, keeping the
// original error in the message.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case foreignKeyViolationCode:
		return fmt.Errorf("%w: foreign key violation (%s): %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case checkViolationCode:
		return fmt.Errorf("%w: check constraint violation (%s): %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: not null violation (%s): %v", store.ErrInvalidEntity, pgErr.ColumnName, err)
	case undefinedTableCode, undefinedColumnCode, ambiguousColumnCode, groupingErrorCode:
		return fmt.Errorf("%w: %v", store.ErrStatementInvalid, err)
	}
	return err
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolationCode)
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, foreignKeyViolationCode)
}

// IsStatementInvalid reports whether err is a rejected statement, raw or
// already mapped.
func IsStatementInvalid(err error) bool {
	if errors.Is(err, store.ErrStatementInvalid) {
		return true
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case undefinedTableCode, undefinedColumnCode, ambiguousColumnCode, groupingErrorCode:
		return true
	}
	return false
}

// failureLevel is the level a failed query is logged at. Rejected
// statements are expected while counting falls back, and constraint
// violations are the caller's fault.
func failureLevel(err error) slog.Level {
	switch {
	case IsStatementInvalid(err):
		return slog.LevelDebug
	case IsUniqueViolation(err), IsForeignKeyViolation(err):
		return slog.LevelWarn
	}
	return slog.LevelError
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
