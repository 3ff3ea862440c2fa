package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                     string
	DBPath                   string
	LogLevel                 string
	JWTSecret                string
	TokenTTLHours            int
	ClassifierURL            string
	ClassifierTimeoutSeconds int
	RetryWorkerCount         int
	RetryQueueSize           int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                     envOr("ADDR", ":8080"),
		DBPath:                   envOr("DB_PATH", "file:signify.db"),
		LogLevel:                 envOr("LOG_LEVEL", "INFO"),
		JWTSecret:                envOr("JWT_SECRET", ""),
		TokenTTLHours:            envIntOr("TOKEN_TTL_HOURS", 72),
		ClassifierURL:            envOr("CLASSIFIER_URL", "http://localhost:8501"),
		ClassifierTimeoutSeconds: envIntOr("CLASSIFIER_TIMEOUT_SECONDS", 15),
		RetryWorkerCount:         envIntOr("RETRY_WORKER_COUNT", 1),
		RetryQueueSize:           envIntOr("RETRY_QUEUE_SIZE", 128),
	}
}

// Validate checks that the configuration is usable before the server starts.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.TokenTTLHours <= 0 {
		return fmt.Errorf("TOKEN_TTL_HOURS must be positive, got %d", c.TokenTTLHours)
	}
	if c.ClassifierURL == "" {
		return fmt.Errorf("CLASSIFIER_URL cannot be empty")
	}
	if c.ClassifierTimeoutSeconds <= 0 {
		return fmt.Errorf("CLASSIFIER_TIMEOUT_SECONDS must be positive, got %d", c.ClassifierTimeoutSeconds)
	}
	if c.RetryWorkerCount <= 0 {
		return fmt.Errorf("RETRY_WORKER_COUNT must be positive, got %d", c.RetryWorkerCount)
	}
	if c.RetryQueueSize <= 0 {
		return fmt.Errorf("RETRY_QUEUE_SIZE must be positive, got %d", c.RetryQueueSize)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
