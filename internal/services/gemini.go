package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

type geminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a Gemini backend. Without an API key the client is
// created unconfigured and reports no credentials.
func NewGeminiClient(ctx context.Context, apiKey, model string) (LLMClient, error) {
	if model == "" {
		model = defaultGeminiModel
	}

	if apiKey == "" {
		return &geminiClient{modelName: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		client:    client,
		modelName: model,
	}, nil
}

// HasCredentials implements LLMClient.
func (g *geminiClient) HasCredentials() bool {
	return g.client != nil
}

// GenerateText implements LLMClient.
func (g *geminiClient) GenerateText(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	if g.client == nil {
		return "", ErrMissingCredentials
	}

	temperature := params.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: int32(params.MaxTokens),
	}
	if params.JSON {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v\n", err)
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}
