// Package openai is the inference provider for OpenAI-compatible chat
// completion APIs: OpenRouter, Groq and OpenAI itself.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"pixweight-backend/internal/inference"
)

// Config configures the client.
type Config struct {
	BaseURL string
	APIKey  string
	// Referer and Title are sent as OpenRouter attribution headers when set.
	Referer string
	Title   string
	Timeout time.Duration
}

// Client implements inference.Provider using Chat Completions.
type Client struct {
	client *goopenai.Client
	log    *zap.Logger
}

// NewClient constructs a client for the given endpoint.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("LLM_BASE_URL is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	clientConfig := goopenai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	clientConfig.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		Transport: headerTransport{
			base:    http.DefaultTransport,
			referer: cfg.Referer,
			title:   cfg.Title,
		},
	}

	return &Client{
		client: goopenai.NewClientWithConfig(clientConfig),
		log:    log.Named("openai"),
	}, nil
}

// Complete sends one chat completion. Image requests carry a multi-part user
// message with the text prompt followed by the image data URL.
func (c *Client) Complete(ctx context.Context, req inference.CompletionRequest) (string, error) {
	user := goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleUser}
	if req.ImageDataURL != "" {
		user.MultiContent = []goopenai.ChatMessagePart{
			{Type: goopenai.ChatMessagePartTypeText, Text: req.Prompt},
			{Type: goopenai.ChatMessagePartTypeImageURL, ImageURL: &goopenai.ChatMessageImageURL{URL: req.ImageDataURL}},
		}
	} else {
		user.Content = req.Prompt
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: req.System},
			user,
		},
		Temperature: req.Temperature,
	})
	if err != nil {
		c.log.Warn("chat completion failed",
			zap.String("model", req.Model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", &inference.TransportError{Status: http.StatusBadGateway, Err: errors.New("no choices in response")}
	}

	c.log.Debug("chat completion",
		zap.String("model", req.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))
	return resp.Choices[0].Message.Content, nil
}

func classify(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return &inference.TransportError{Status: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return &inference.TransportError{Status: reqErr.HTTPStatusCode, Err: err}
	}
	return &inference.TransportError{Err: err}
}

type headerTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t headerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if t.referer == "" && t.title == "" {
		return t.base.RoundTrip(r)
	}
	r = r.Clone(r.Context())
	if t.referer != "" {
		r.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		r.Header.Set("X-Title", t.title)
	}
	return t.base.RoundTrip(r)
}

var _ inference.Provider = (*Client)(nil)
