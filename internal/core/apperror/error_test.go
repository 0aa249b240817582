package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_WrappedInChain(t *testing.T) {
	base := NewNotFound("maquinaria", "42")
	wrapped := fmt.Errorf("get maquinaria: %w", base)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(wrapped))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
}

func TestAppError_CauseIsUnwrapped(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternal(cause).WithDetail("entity", "repuesto")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "repuesto", err.Details["entity"])
	assert.Contains(t, err.Error(), "connection reset")
}

func TestGetHTTPStatus_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
}

func TestNewInvalidInput(t *testing.T) {
	err := NewInvalidInput("filters", errors.New("unexpected EOF"))

	assert.Equal(t, CodeInvalidInput, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, "filters", err.Details["param"])
}

func TestNewConcurrentModification(t *testing.T) {
	err := fmt.Errorf("update: %w", NewConcurrentModification("reparación", "r-1"))

	assert.True(t, IsConcurrentModification(err))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(err))
	assert.False(t, IsAppError(errors.New("plain")))
}
