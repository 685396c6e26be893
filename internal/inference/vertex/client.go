// Package vertex is the inference provider for Gemini models on Vertex AI.
package vertex

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pixweight-backend/internal/inference"
)

// Config selects the Vertex AI project.
type Config struct {
	ProjectID       string
	Location        string
	CredentialsFile string
}

// Client implements inference.Provider with GenerateContent.
type Client struct {
	client *genai.Client
	log    *zap.Logger
}

// NewClient dials Vertex AI. Credentials come from CredentialsFile when set,
// otherwise from application default credentials.
func NewClient(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, fmt.Errorf("VERTEX_PROJECT is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location, opts...)
	if err != nil {
		return nil, fmt.Errorf("vertex client: %w", err)
	}
	return &Client{client: client, log: log.Named("vertex")}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) Complete(ctx context.Context, req inference.CompletionRequest) (string, error) {
	model := c.client.GenerativeModel(req.Model)
	model.SetTemperature(req.Temperature)
	model.ResponseMIMEType = "application/json"
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}

	parts := []genai.Part{genai.Text(req.Prompt)}
	if req.ImageDataURL != "" {
		subtype, data, err := decodeDataURL(req.ImageDataURL)
		if err != nil {
			return "", &inference.TransportError{Status: http.StatusBadRequest, Err: err}
		}
		parts = append(parts, genai.ImageData(subtype, data))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		c.log.Warn("generate content failed", zap.String("model", req.Model), zap.Error(err))
		return "", &inference.TransportError{Status: httpStatus(err), Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &inference.TransportError{Status: http.StatusBadGateway, Err: errors.New("no candidates in response")}
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}

// decodeDataURL splits "data:image/png;base64,...." into the image subtype and bytes.
func decodeDataURL(u string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(u, "data:")
	if !ok {
		return "", nil, errors.New("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return "", nil, errors.New("data URL is not base64")
	}
	mime := strings.TrimSuffix(meta, ";base64")
	subtype, ok := strings.CutPrefix(mime, "image/")
	if !ok || subtype == "" {
		return "", nil, fmt.Errorf("unsupported data URL type %q", mime)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL: %w", err)
	}
	return subtype, data, nil
}

func httpStatus(err error) int {
	switch status.Code(err) {
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unavailable, codes.Internal, codes.DeadlineExceeded, codes.Aborted:
		return http.StatusServiceUnavailable
	case codes.InvalidArgument, codes.FailedPrecondition:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	default:
		return 0
	}
}

var _ inference.Provider = (*Client)(nil)
