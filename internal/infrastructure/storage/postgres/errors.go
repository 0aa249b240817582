package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"agrofleet/internal/core/apperror"
)

// PostgreSQL error codes handled by repositories.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// TranslateError maps constraint violations of table to AppErrors.
// Other errors are returned unchanged.
func TranslateError(err error, table string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeForeignKeyViolation:
		return apperror.NewConflict("record is referenced by other records").
			WithDetail("entity", table).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	case codeUniqueViolation:
		return apperror.NewDuplicate(table, pgErr.ConstraintName, pgErr.Detail).
			WithCause(err)
	case codeCheckViolation:
		return apperror.NewValidation("value violates a table constraint").
			WithDetail("entity", table).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	}
	return err
}
