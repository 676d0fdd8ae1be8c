package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	// Upstream CRM API
	APIBaseURL string
	APITimeout time.Duration

	// List screens
	PageSize       int
	SearchDebounce time.Duration

	// Reference data (dropdown sources)
	RefDataRefreshInterval time.Duration

	// Photo uploads are downscaled to fit this dimension before being
	// forwarded to the CRM files endpoint.
	UploadMaxDimension int

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		APITimeout: getEnvDuration("CRM_API_TIMEOUT", 30*time.Second),

		// Every list screen in the original UI pages by 10.
		PageSize:       getEnvInt("PAGE_SIZE", 10),
		SearchDebounce: getEnvDuration("SEARCH_DEBOUNCE", time.Second),

		RefDataRefreshInterval: getEnvDuration("REFDATA_REFRESH_INTERVAL", 15*time.Minute),

		UploadMaxDimension: getEnvInt("UPLOAD_MAX_DIMENSION", 1600),

		// Metrics authentication
		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	// Required
	cfg.APIBaseURL = os.Getenv("CRM_API_URL")
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("CRM_API_URL is required")
	}

	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got: %d", cfg.PageSize)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
