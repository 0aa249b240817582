package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"agrofleet/internal/core/apperror"
)

func TestTranslateError(t *testing.T) {
	fk := fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23503", ConstraintName: "reparaciones_maquinaria_id_fkey"})
	err := TranslateError(fk, TableMachinery)
	appErr, ok := apperror.AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
	assert.Equal(t, 409, appErr.HTTPStatus)

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "repuestos_codigo_uq"}
	appErr, ok = apperror.AsAppError(TranslateError(dup, TableParts))
	assert.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)

	assert.True(t, apperror.IsValidation(TranslateError(&pgconn.PgError{Code: "23514"}, TableParts)))

	plain := errors.New("connection reset")
	assert.Same(t, plain, TranslateError(plain, TableParts))
}
