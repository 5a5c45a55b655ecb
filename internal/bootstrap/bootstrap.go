// Package bootstrap builds the analysis components from configuration so the
// API server, the CLI and the scripts share one wiring.
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"alfredoptarigan/profile-screener/internal/config"
	"alfredoptarigan/profile-screener/internal/repositories"
	"alfredoptarigan/profile-screener/internal/services"
)

const (
	StorageLocal    = "local"
	StorageS3       = "s3"
	StorageDatabase = "database"
)

// NewObjectStore selects the store named by STORAGE_DRIVER. The returned
// close function releases the database handle when one was opened.
func NewObjectStore(ctx context.Context, cfg *config.Config) (services.ObjectStore, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case StorageLocal, "":
		store, err := services.NewLocalStore(cfg.Storage.UploadPath)
		if err != nil {
			return nil, noop, err
		}
		log.Printf("✅ Using local profile storage at %s\n", cfg.Storage.UploadPath)
		return store, noop, nil

	case StorageS3:
		store, err := services.NewS3Store(ctx, services.S3StoreConfig{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccountID: cfg.S3.AccountID,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize object storage: %w", err)
		}
		return store, noop, nil

	case StorageDatabase:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return nil, noop, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return services.NewDatabaseStore(repositories.NewProfileRepository(db)), closeDB, nil

	default:
		return nil, noop, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
}

// NewTextExtractor builds the configured extraction chain.
func NewTextExtractor(cfg *config.Config) (services.TextExtractor, error) {
	remote := services.NewRemoteExtractionStrategy(services.RemoteExtractionConfig{
		URL:     cfg.Extraction.ServiceURL,
		APIKey:  cfg.Extraction.ServiceAPIKey,
		Timeout: cfg.Extraction.Timeout,
	})
	if remote == nil {
		log.Println("⚠️  No extraction service configured, using local stages only")
	}

	chain, err := services.BuildExtractionChain(cfg.Extraction.Chain, remote)
	if err != nil {
		return nil, err
	}

	return services.NewTextExtractor(services.ExtractorOptions{
		MinChars: cfg.Extraction.MinChars,
		MaxChars: cfg.Extraction.MaxChars,
	}, chain...), nil
}

func NewLLMScorer(ctx context.Context, cfg *config.Config) (services.LLMScorer, error) {
	client, err := services.NewLLMClient(ctx, services.LLMClientConfig{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
	}, services.WithTimeout(cfg.LLM.Timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize language model client: %w", err)
	}

	if !client.HasCredentials() {
		log.Printf("⚠️  No API key configured for %s, analysis requests will be rejected\n", cfg.LLM.Provider)
	}

	temperature := cfg.LLM.Temperature
	return services.NewLLMScorer(client, services.ScorerOptions{
		Temperature: &temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}), nil
}

// NewBatchAnalyzer assembles extractor, scorer and pacing from configuration.
func NewBatchAnalyzer(ctx context.Context, cfg *config.Config, notifier services.ProgressNotifier) (services.BatchAnalyzer, error) {
	extractor, err := NewTextExtractor(cfg)
	if err != nil {
		return nil, err
	}

	scorer, err := NewLLMScorer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return services.NewBatchAnalyzer(extractor, scorer,
		services.WithPacer(services.NewRatePacer(cfg.Analyzer.PaceInterval, cfg.Analyzer.Burst)),
		services.WithNotifier(notifier),
		services.WithMaxDocuments(cfg.Analyzer.MaxDocuments),
		services.WithDownloadConcurrency(cfg.S3.DownloadConcurrency),
	), nil
}

// NewProgressNotifier publishes to RabbitMQ when RABBITMQ_URL is set and
// logs otherwise. The returned stop function flushes pending events.
func NewProgressNotifier(cfg *config.Config) (services.ProgressNotifier, func()) {
	if cfg.Queue.RabbitMQURL == "" {
		return services.LogNotifier(), func() {}
	}

	publisher, err := services.NewAMQPPublisher(cfg.Queue.RabbitMQURL, cfg.Queue.Exchange)
	if err != nil {
		log.Printf("⚠️  Progress events disabled: %v\n", err)
		return services.LogNotifier(), func() {}
	}

	notifier := services.NewQueuedNotifier(publisher.Publish, 100)
	notifier.Start()
	log.Printf("✅ Publishing progress events to exchange %s\n", cfg.Queue.Exchange)

	return notifier, func() {
		notifier.Stop()
		if err := publisher.Close(); err != nil {
			log.Printf("⚠️  Failed to close RabbitMQ connection: %v\n", err)
		}
	}
}
