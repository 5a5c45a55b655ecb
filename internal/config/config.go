package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Storage    StorageConfig
	S3         S3Config
	LLM        LLMConfig
	Extraction ExtractionConfig
	Analyzer   AnalyzerConfig
	Queue      QueueConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SQLitePath string
}

type StorageConfig struct {
	Driver         string
	UploadPath     string
	MaxFileSize    int64
	MaxUploadFiles int
}

type S3Config struct {
	Bucket              string
	Region              string
	Endpoint            string
	AccountID           string
	AccessKey           string
	SecretKey           string
	DownloadConcurrency int
}

type LLMConfig struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

type ExtractionConfig struct {
	Chain         []string
	ServiceURL    string
	ServiceAPIKey string
	MinChars      int
	MaxChars      int
	Timeout       time.Duration
}

type AnalyzerConfig struct {
	PaceInterval     time.Duration
	Burst            int
	MaxDocuments     int
	EmptyStorePolicy string
}

type QueueConfig struct {
	RabbitMQURL string
	Exchange    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	provider := strings.ToLower(getEnv("LLM_PROVIDER", "anthropic"))

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", "postgres"),
			DBName:     getEnv("DB_NAME", "profile_screener"),
			SQLitePath: getEnv("SQLITE_PATH", "./data/profiles.db"),
		},
		Storage: StorageConfig{
			Driver:         getEnv("STORAGE_DRIVER", "local"),
			UploadPath:     getEnv("UPLOAD_PATH", "./profiles"),
			MaxFileSize:    getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			MaxUploadFiles: getEnvAsInt("MAX_UPLOAD_FILES", 10),
		},
		S3: S3Config{
			Bucket:              getEnv("S3_BUCKET", "candidate_profiles"),
			Region:              getEnv("S3_REGION", "auto"),
			Endpoint:            getEnv("S3_ENDPOINT", ""),
			AccountID:           getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:           getEnv("S3_ACCESS_KEY", ""),
			SecretKey:           getEnv("S3_SECRET_KEY", ""),
			DownloadConcurrency: getEnvAsInt("S3_DOWNLOAD_CONCURRENCY", 4),
		},
		LLM: LLMConfig{
			Provider:    provider,
			APIKey:      getEnv("LLM_API_KEY", defaultAPIKey(provider)),
			Model:       getEnv("LLM_MODEL", ""),
			BaseURL:     getEnv("LLM_BASE_URL", ""),
			Temperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.1),
			MaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 2000),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", "60s"),
		},
		Extraction: ExtractionConfig{
			Chain:         getEnvAsList("EXTRACTION_CHAIN", "remote,pattern,heuristic,synthetic"),
			ServiceURL:    getEnv("EXTRACTION_SERVICE_URL", ""),
			ServiceAPIKey: getEnv("EXTRACTION_SERVICE_API_KEY", ""),
			MinChars:      getEnvAsInt("EXTRACTION_MIN_CHARS", 100),
			MaxChars:      getEnvAsInt("EXTRACTION_MAX_CHARS", 5000),
			Timeout:       getEnvAsDuration("EXTRACTION_TIMEOUT", "30s"),
		},
		Analyzer: AnalyzerConfig{
			PaceInterval:     getEnvAsDuration("ANALYZER_PACE_INTERVAL", "1s"),
			Burst:            getEnvAsInt("ANALYZER_BURST", 1),
			MaxDocuments:     getEnvAsInt("ANALYZER_MAX_DOCUMENTS", 10),
			EmptyStorePolicy: getEnv("ANALYZER_EMPTY_STORE_POLICY", "reject"),
		},
		Queue: QueueConfig{
			RabbitMQURL: getEnv("RABBITMQ_URL", ""),
			Exchange:    getEnv("RABBITMQ_EXCHANGE", "profile_analysis"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.SQLitePath
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// defaultAPIKey falls back to the provider's conventional variable.
func defaultAPIKey(provider string) string {
	switch provider {
	case "gemini":
		return getEnv("GEMINI_API_KEY", "")
	default:
		return getEnv("ANTHROPIC_API_KEY", "")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key string, defaultValue string) []string {
	var items []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, strings.ToLower(item))
		}
	}
	return items
}
