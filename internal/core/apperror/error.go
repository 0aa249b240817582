// Package apperror defines the error type shared by services, storage and the
// HTTP layer. Every AppError carries a stable code and the status the API
// answers with.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInternal = "INTERNAL_ERROR"
	CodeDatabase = "DATABASE_ERROR"

	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"

	CodeBusinessRule           = "BUSINESS_RULE_VIOLATION"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"

	CodeNotFound = "NOT_FOUND"

	CodeConflict  = "CONFLICT"
	CodeDuplicate = "DUPLICATE_ENTRY"
)

// AppError is the error value returned across package boundaries.
type AppError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is not serialized; handlers write it as the response status.
	HTTPStatus int   `json:"-"`
	Err        error `json:"-"`
}

func newError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// WithDetail sets a detail entry and returns e for chaining.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, 2)
	}
	e.Details[key] = value
	return e
}

// WithCause attaches the underlying error.
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// NewValidation reports a record or filter value that breaks a rule (400).
func NewValidation(message string) *AppError {
	return newError(CodeValidation, http.StatusBadRequest, message)
}

// NewInvalidInput reports a request parameter that could not be decoded (400).
func NewInvalidInput(param string, err error) *AppError {
	return newError(CodeInvalidInput, http.StatusBadRequest, "invalid "+param).
		WithDetail("param", param).
		WithCause(err)
}

// NewNotFound reports a missing record of the given entity (404).
func NewNotFound(entity string, id any) *AppError {
	return newError(CodeNotFound, http.StatusNotFound, entity+" not found").
		WithDetail("entity", entity).
		WithDetail("id", id)
}

// NewBusinessRule reports a hook or service rule that refused the change (422).
func NewBusinessRule(code, message string) *AppError {
	return newError(code, http.StatusUnprocessableEntity, message)
}

// NewConcurrentModification reports a stale version on update (409).
func NewConcurrentModification(entity string, id any) *AppError {
	return newError(CodeConcurrentModification, http.StatusConflict,
		entity+" was changed since it was read; reload it and try again").
		WithDetail("entity", entity).
		WithDetail("id", id)
}

// NewInternal hides err from clients behind a generic message (500).
func NewInternal(err error) *AppError {
	return newError(CodeInternal, http.StatusInternalServerError, "internal error").WithCause(err)
}

func NewConflict(message string) *AppError {
	return newError(CodeConflict, http.StatusConflict, message)
}

// NewDuplicate reports a unique field clash, such as a repeated part code (409).
func NewDuplicate(entity, field, value string) *AppError {
	return newError(CodeDuplicate, http.StatusConflict,
		fmt.Sprintf("%s with %s %q already exists", entity, field, value)).
		WithDetail("entity", entity).
		WithDetail("field", field).
		WithDetail("value", value)
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// GetHTTPStatus maps any error to a response status; plain errors are 500.
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

func hasCode(err error, code string) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

func IsConcurrentModification(err error) bool {
	return hasCode(err, CodeConcurrentModification)
}
