// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input errors.
	ErrInvalidInput = errors.New("invalid input")

	// Rule registry errors.
	ErrPatternCompilation = errors.New("pattern compilation failed")
	ErrInvalidGroup       = errors.New("invalid pattern group")

	// Statistical model errors.
	ErrModelUnavailable      = errors.New("statistical model unavailable")
	ErrVectorizationMismatch = errors.New("feature vector incompatible with model")
	ErrUnknownLabel          = errors.New("model produced an unknown label")

	// Storage errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage returns the user-facing message for err. Errors that are not
// UserErrors are described by their well-known kind when possible.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return "Please enter a valid SMS message."
	case errors.Is(err, ErrModelUnavailable):
		return "The statistical model is not loaded, so this message cannot be classified."
	case errors.Is(err, ErrVectorizationMismatch), errors.Is(err, ErrUnknownLabel):
		return "The statistical model and vectorizer do not agree; check that they come from the same training run."
	default:
		return err.Error()
	}
}
