package inference

import (
	"errors"
	"fmt"
	"strings"
)

// TransportError is a provider failure. Status is the HTTP status when one
// was received, 0 for network failures.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("provider error %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("provider error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Retryable reports whether another attempt could succeed.
func (e *TransportError) Retryable() bool {
	return e.Status == 0 || e.Status == 429 || e.Status >= 500
}

// ErrMalformedJSON marks a completion without a parseable JSON object.
var ErrMalformedJSON = errors.New("malformed JSON in completion")

// UpstreamError is returned once retries are exhausted or a failure is not retryable.
type UpstreamError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s failed after %d attempt(s): %v", e.Op, e.Attempts, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ImageRejectedError means the image cannot be used for estimation.
type ImageRejectedError struct {
	Summary string
	Issues  []string
}

func (e *ImageRejectedError) Error() string {
	return fmt.Sprintf("Image validation failed: %s. Issues: %s", e.Summary, strings.Join(e.Issues, "; "))
}

func retryable(err error) bool {
	if errors.Is(err, ErrNotConfigured) {
		return false
	}
	if errors.Is(err, ErrMalformedJSON) {
		return true
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable()
	}
	return true
}
