package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	// ErrSourceNotFound is fatal: the batch source document is missing or
	// unreadable. Raised before any page is processed.
	ErrSourceNotFound = errors.New("source document not found")

	// ErrOutputWrite is systemic: materializing a routed document failed.
	// It aborts the remaining batch because it indicates data loss risk,
	// not a page-specific problem.
	ErrOutputWrite = errors.New("output write failed")

	ErrInvalidInput = errors.New("invalid input")
	ErrCancelled    = errors.New("run cancelled")
	ErrInternal     = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsAborting reports whether err must stop the whole batch rather than
// be folded into the per-page error list.
func IsAborting(err error) bool {
	return errors.Is(err, ErrSourceNotFound) || errors.Is(err, ErrOutputWrite)
}
