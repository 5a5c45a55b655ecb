package services

import (
	"context"
	"fmt"
)

type GenerationParams struct {
	Temperature float32
	MaxTokens   int
	// JSON asks providers that support it for a JSON response body.
	JSON bool
}

// LLMClient is a text-in, text-out language model backend.
type LLMClient interface {
	GenerateText(ctx context.Context, prompt string, params GenerationParams) (string, error)
	HasCredentials() bool
}

type LLMClientConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

func NewLLMClient(ctx context.Context, cfg LLMClientConfig, anthropicOpts ...AnthropicOption) (LLMClient, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	case "anthropic", "":
		return NewAnthropicClient(cfg.APIKey, cfg.Model, cfg.BaseURL, anthropicOpts...), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
