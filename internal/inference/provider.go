// Package inference wraps the vision and text model calls of the estimation
// pipeline: image quality validation, object identification and weight
// estimation. Providers only move text; prompts, JSON extraction, retries and
// unit normalization live in the Gateway.
package inference

import (
	"context"
	"errors"
)

// CompletionRequest is one chat completion. ImageDataURL is empty for text-only calls.
type CompletionRequest struct {
	Model        string
	System       string
	Prompt       string
	ImageDataURL string
	Temperature  float32
}

// Provider returns the raw text content of a single completion.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ErrNotConfigured is returned when no provider has been set up.
var ErrNotConfigured = errors.New("inference provider not configured")

// Unconfigured fails every call. It keeps the service bootable without credentials.
type Unconfigured struct{}

func (Unconfigured) Complete(context.Context, CompletionRequest) (string, error) {
	return "", &TransportError{Err: ErrNotConfigured, Status: 503}
}
