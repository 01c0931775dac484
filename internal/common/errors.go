// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound        = errors.New("not found")
	ErrDuplicateEntry  = errors.New("duplicate entry")
	ErrCorruptDocument = errors.New("document corrupted")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrSameName        = errors.New("name unchanged")
	ErrInvalidAmount   = errors.New("invalid amount")

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

// UserMessage returns the message meant for the terminal. Errors that are not
// UserErrors fall back to their Error text.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}
