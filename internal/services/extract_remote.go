package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"alfredoptarigan/profile-screener/internal/models"
)

const remoteMinChars = 50

type RemoteExtractionConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
	Client  *http.Client
}

type remoteExtractionStrategy struct {
	url    string
	apiKey string
	client *http.Client
}

type remoteExtractionRequest struct {
	URL    string `json:"url"`
	Inline bool   `json:"inline"`
	Async  bool   `json:"async"`
}

type remoteExtractionResponse struct {
	Error   bool   `json:"error"`
	Body    string `json:"body"`
	Message string `json:"message"`
}

// NewRemoteExtractionStrategy returns nil when no service URL is configured.
func NewRemoteExtractionStrategy(cfg RemoteExtractionConfig) ExtractionStrategy {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil
	}

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &remoteExtractionStrategy{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: client,
	}
}

func (s *remoteExtractionStrategy) Name() string {
	return StageRemote
}

func (s *remoteExtractionStrategy) TryExtract(ctx context.Context, doc models.Document) (string, bool) {
	if len(doc.Content) == 0 {
		return "", false
	}

	text, err := s.extract(ctx, doc.Content)
	if err != nil {
		log.Printf("⚠️  External extraction failed for %s: %v\n", doc.Name, err)
		return "", false
	}

	if len([]rune(text)) <= remoteMinChars {
		log.Printf("⚠️  External extraction returned too little text for %s\n", doc.Name)
		return "", false
	}

	return text, true
}

func (s *remoteExtractionStrategy) extract(ctx context.Context, content []byte) (string, error) {
	payload, err := json.Marshal(remoteExtractionRequest{
		URL:    "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(content),
		Inline: true,
		Async:  false,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("x-api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("non-2xx status: %d", resp.StatusCode)
	}

	var result remoteExtractionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if result.Error {
		return "", fmt.Errorf("service reported failure: %s", result.Message)
	}

	return strings.TrimSpace(result.Body), nil
}
