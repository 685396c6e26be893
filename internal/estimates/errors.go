package estimates

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("estimate not found")
	// ErrAlreadyExists is returned when a session already has an estimate.
	ErrAlreadyExists = errors.New("estimate already exists for session")
	// ErrFeedbackExists is returned when an estimate already has feedback.
	ErrFeedbackExists = errors.New("feedback already submitted")
)

// ValidationError reports an invalid feedback field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
