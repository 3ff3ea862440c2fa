package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmensah/signify/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                     ":8080",
		DBPath:                   "test.db",
		LogLevel:                 "INFO",
		JWTSecret:                "test-secret",
		TokenTTLHours:            72,
		ClassifierURL:            "http://localhost:8501",
		ClassifierTimeoutSeconds: 15,
		RetryWorkerCount:         1,
		RetryQueueSize:           128,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_MissingJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_InvalidTokenTTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  int
	}{
		{name: "zero ttl", ttl: 0},
		{name: "negative ttl", ttl: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.TokenTTLHours = tt.ttl

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "TOKEN_TTL_HOURS")
		})
	}
}

func TestValidate_InvalidRetryPool(t *testing.T) {
	cfg := validConfig()
	cfg.RetryWorkerCount = 0
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RETRY_WORKER_COUNT")

	cfg = validConfig()
	cfg.RetryQueueSize = -1
	err = cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RETRY_QUEUE_SIZE")
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ADDR", "DB_PATH", "LOG_LEVEL", "JWT_SECRET", "TOKEN_TTL_HOURS",
		"CLASSIFIER_URL", "CLASSIFIER_TIMEOUT_SECONDS", "RETRY_WORKER_COUNT", "RETRY_QUEUE_SIZE",
	} {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := config.Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:signify.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 72, cfg.TokenTTLHours)
	assert.Equal(t, "http://localhost:8501", cfg.ClassifierURL)
	assert.Equal(t, 15, cfg.ClassifierTimeoutSeconds)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("TOKEN_TTL_HOURS", "24")
	t.Setenv("RETRY_QUEUE_SIZE", "not-a-number")

	cfg := config.Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 24, cfg.TokenTTLHours)
	// Invalid ints fall back to the default.
	assert.Equal(t, 128, cfg.RetryQueueSize)
}
