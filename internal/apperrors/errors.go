package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks. These are
// recoverable by user correction.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the operation conflicts with the current state
// of the resource (illegal lifecycle transition, immutable field update,
// restricted delete).
var ErrConflict = errors.New("conflict")

// ErrUnimplemented indicates a configuration hole, like a payment group whose
// journal has no SEPA flavor to render with. Admin intervention required.
var ErrUnimplemented = errors.New("not implemented")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries a status code and message around a wrapped cause, for
// failures that need more context than a bare sentinel.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
