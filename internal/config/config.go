package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	OpenWeatherAPIKey string

	// BucketName is the S3 bucket weather documents are written to.
	BucketName string
	AWSRegion  string

	// LLM keys are optional; when neither is set summaries use the
	// deterministic fallback template.
	OpenAIAPIKey    string
	AnthropicAPIKey string

	// HTTPTimeout applies to the shared outbound HTTP client.
	HTTPTimeout time.Duration

	// FetchInterval controls how often watch mode reruns the pipeline.
	FetchInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults. It fails
// fast when a required value is absent.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.BucketName = os.Getenv("AWS_BUCKET_NAME")
	cfg.AWSRegion = getenvDefault("AWS_REGION", "us-east-1")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")

	var missing []string
	if cfg.OpenWeatherAPIKey == "" {
		missing = append(missing, "OPENWEATHER_API_KEY")
	}
	if cfg.BucketName == "" {
		missing = append(missing, "AWS_BUCKET_NAME")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Watch-mode interval: default 15 minutes.
	intervalStr := getenvDefault("FETCH_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
