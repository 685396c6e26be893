package sessions

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("session not found")
	// ErrSessionFailed is returned when answers are submitted to a FAILED session.
	ErrSessionFailed = errors.New("session failed; start a new session")
	// ErrSessionClosed is returned by Repo writes against an ESTIMATED or
	// FAILED session.
	ErrSessionClosed = errors.New("session already closed")
)

// ValidationError reports a user-correctable input problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
