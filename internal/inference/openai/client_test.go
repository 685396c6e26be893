package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixweight-backend/internal/inference"
)

type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"messages"`
}

func TestCompleteSendsImagePartsAndHeaders(t *testing.T) {
	var got capturedRequest
	var headers http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"ok\":true}"}}],"usage":{"prompt_tokens":3,"completion_tokens":2,"total_tokens":5}}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL + "/", APIKey: "k", Referer: "https://pixweight.app", Title: "PixWeight"}, nil)
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), inference.CompletionRequest{
		Model:        "vision",
		System:       "sys",
		Prompt:       `{"task":"x"}`,
		ImageDataURL: "data:image/png;base64,AAAA",
		Temperature:  0.2,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)

	assert.Equal(t, "Bearer k", headers.Get("Authorization"))
	assert.Equal(t, "https://pixweight.app", headers.Get("HTTP-Referer"))
	assert.Equal(t, "PixWeight", headers.Get("X-Title"))

	assert.Equal(t, "vision", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	var parts []map[string]any
	require.NoError(t, json.Unmarshal(got.Messages[1].Content, &parts))
	require.Len(t, parts, 2)
	assert.Equal(t, "text", parts[0]["type"])
	assert.Equal(t, "image_url", parts[1]["type"])
}

func TestCompleteMapsStatusCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k"}, nil)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), inference.CompletionRequest{Model: "text", Prompt: "hi"})
	var te *inference.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusTooManyRequests, te.Status)
	assert.True(t, te.Retryable())
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "https://openrouter.ai/api/v1"}, nil)
	assert.Error(t, err)
}
