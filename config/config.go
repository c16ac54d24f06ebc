// Package config loads logictree settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL    = "https://api.openai.com/v1/chat/completions"
	DefaultModel     = "gpt-3.5-turbo"
	DefaultMaxTokens = 100
)

// Config holds all application configuration
type Config struct {
	// Remote sample endpoint
	API API

	// Editor
	HistoryLimit int `validate:"gte=0"`

	// Logging
	LogLevel    string `validate:"oneof=debug info warn error"`
	LogFile     string `validate:"required"`
	Environment string `validate:"oneof=development production"`
}

// API is the completion endpoint configuration. It is re-read from the
// environment on every request; see LoadAPI.
type API struct {
	URL       string `validate:"required,url"`
	Key       string
	Model     string `validate:"required"`
	MaxTokens int    `validate:"gte=1"`
}

var validate = validator.New()

// LoadEnvFile loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		API:          LoadAPI(),
		HistoryLimit: getEnvInt("LOGICTREE_HISTORY_LIMIT", 0),
		LogLevel:     getEnv("LOGICTREE_LOG_LEVEL", "info"),
		LogFile:      getEnv("LOGICTREE_LOG_FILE", filepath.Join(os.TempDir(), "logictree.log")),
		Environment:  getEnv("LOGICTREE_ENV", "production"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadAPI reads the completion endpoint settings.
func LoadAPI() API {
	return API{
		URL:       getEnv("OPENAI_API_URL", DefaultAPIURL),
		Key:       os.Getenv("OPENAI_API_KEY"),
		Model:     getEnv("OPENAI_MODEL", DefaultModel),
		MaxTokens: getEnvInt("OPENAI_MAX_TOKENS", DefaultMaxTokens),
	}
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
