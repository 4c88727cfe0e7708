package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidAmount indicates a money amount outside the accepted range.
// It wraps ErrValidation so callers checking for validation failures also match it.
var ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrValidation)

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates an illegal lifecycle transition.
var ErrInvalidState = errors.New("invalid state transition")

// ErrAlreadyProcessed indicates a withdrawal request that is no longer awaiting a decision.
var ErrAlreadyProcessed = errors.New("request already processed")

// ErrInsufficientBalance indicates that a debit exceeds the funds available.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller lacks permission for the action.
var ErrForbidden = errors.New("forbidden")

// AppError carries an HTTP-ish status code alongside an underlying error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
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
