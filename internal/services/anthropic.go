package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultAnthropicModel = "claude-3-5-sonnet-20241022"
)

// StatusError is returned when the model endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("model API error: status %d: %s", e.StatusCode, e.Body)
}

type anthropicSettings struct {
	http       *http.Client
	maxRetries int
}

type AnthropicOption func(*anthropicSettings)

func WithHTTPClient(client *http.Client) AnthropicOption {
	return func(s *anthropicSettings) {
		if client != nil {
			s.http = client
		}
	}
}

func WithTimeout(timeout time.Duration) AnthropicOption {
	return func(s *anthropicSettings) {
		if timeout > 0 {
			s.http = &http.Client{Timeout: timeout}
		}
	}
}

// WithMaxRetries lets the SDK retry 429 and 5xx answers. The default is no
// retries: a failed call already becomes a failed analysis.
func WithMaxRetries(retries int) AnthropicOption {
	return func(s *anthropicSettings) {
		if retries >= 0 {
			s.maxRetries = retries
		}
	}
}

type anthropicClient struct {
	apiKey string
	model  string
	client anthropic.Client
}

func NewAnthropicClient(apiKey, model, baseURL string, opts ...AnthropicOption) LLMClient {
	if model == "" {
		model = defaultAnthropicModel
	}

	settings := &anthropicSettings{http: &http.Client{Timeout: 60 * time.Second}}
	for _, opt := range opts {
		opt(settings)
	}

	requestOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(settings.http),
		option.WithMaxRetries(settings.maxRetries),
	}
	if baseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(baseURL))
	}

	return &anthropicClient{
		apiKey: apiKey,
		model:  model,
		client: anthropic.NewClient(requestOpts...),
	}
}

// HasCredentials implements LLMClient.
func (c *anthropicClient) HasCredentials() bool {
	return c.apiKey != ""
}

// GenerateText implements LLMClient. params.JSON is expressed in the prompt only.
func (c *anthropicClient) GenerateText(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingCredentials
	}

	start := time.Now()
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(params.MaxTokens),
		Temperature: anthropic.Float(float64(params.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			log.Printf("🤖 Model API responded %d in %s\n", apiErr.StatusCode, time.Since(start).Round(time.Millisecond))
			return "", &StatusError{StatusCode: apiErr.StatusCode, Body: strings.TrimSpace(apiErr.RawJSON())}
		}
		return "", fmt.Errorf("call model API: %w", err)
	}

	log.Printf("🤖 Model API responded in %s\n", time.Since(start).Round(time.Millisecond))

	for _, block := range message.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return strings.TrimSpace(block.Text), nil
		}
	}

	return "", fmt.Errorf("unexpected response format from model API")
}
