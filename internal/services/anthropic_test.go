package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messagesRequest struct {
	Model       string   `json:"model"`
	MaxTokens   int      `json:"max_tokens"`
	Temperature *float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

func writeMessage(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-sonnet-20241022","stop_reason":"end_turn","content":` + content + `,"usage":{"input_tokens":1,"output_tokens":1}}`))
}

func TestAnthropicClient_GenerateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))

		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, defaultAnthropicModel, req.Model)
		assert.Equal(t, 2000, req.MaxTokens)
		require.NotNil(t, req.Temperature)
		assert.InDelta(t, 0.1, *req.Temperature, 0.0001)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		require.Len(t, req.Messages[0].Content, 1)
		assert.Equal(t, "score this", req.Messages[0].Content[0].Text)

		writeMessage(w, `[{"type":"text","text":"  {\"ok\":true}  "}]`)
	}))
	defer server.Close()

	client := NewAnthropicClient("test-key", "", server.URL)
	text, err := client.GenerateText(context.Background(), "score this", GenerationParams{Temperature: 0.1, MaxTokens: 2000})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)
}

func TestAnthropicClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"rate limited"}}`))
	}))
	defer server.Close()

	client := NewAnthropicClient("test-key", "", server.URL, WithHTTPClient(server.Client()))
	_, err := client.GenerateText(context.Background(), "prompt", GenerationParams{})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "rate_limit_error")
}

func TestAnthropicClient_ZeroTemperatureIsSent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.Temperature)
		assert.Zero(t, *req.Temperature)

		writeMessage(w, `[{"type":"text","text":"done"}]`)
	}))
	defer server.Close()

	text, err := NewAnthropicClient("test-key", "", server.URL).GenerateText(context.Background(), "prompt", GenerationParams{MaxTokens: 10})

	require.NoError(t, err)
	assert.Equal(t, "done", text)
}

func TestAnthropicClient_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, `[]`)
	}))
	defer server.Close()

	_, err := NewAnthropicClient("test-key", "", server.URL).GenerateText(context.Background(), "prompt", GenerationParams{})
	assert.Error(t, err)
}

func TestAnthropicClient_MissingKey(t *testing.T) {
	client := NewAnthropicClient("", "", "")

	assert.False(t, client.HasCredentials())
	_, err := client.GenerateText(context.Background(), "prompt", GenerationParams{})
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGeminiClient_MissingKey(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), "", "")
	require.NoError(t, err)

	assert.False(t, client.HasCredentials())
	_, err = client.GenerateText(context.Background(), "prompt", GenerationParams{})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestNewLLMClient_UnknownProvider(t *testing.T) {
	_, err := NewLLMClient(context.Background(), LLMClientConfig{Provider: "mystery"})
	assert.Error(t, err)
}
