package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront and the development API.
// Following 12-factor app principles, all config is loaded from environment variables
// (optionally preloaded from a .env file in the working directory).
type Config struct {
	Client   ClientConfig
	Server   ServerConfig
	Auth     AuthConfig
	LogLevel string
	LogFile  string
}

// ClientConfig configures how the storefront talks to the food API
type ClientConfig struct {
	BaseURL       string
	APIKey        string
	PageSize      int
	HTTPTimeout   int // seconds
	NoticeTimeout int // seconds an "added to cart" notice stays visible
	ProviderID    int // provider preselected on new listings
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type AuthConfig struct {
	APIKeys []string // Valid API keys for provider-facing endpoints
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	cfg := &Config{
		Client: ClientConfig{
			BaseURL:       strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
			APIKey:        getEnv("API_KEY", "apitest"),
			PageSize:      getEnvAsInt("PAGE_SIZE", 15),
			HTTPTimeout:   getEnvAsInt("HTTP_TIMEOUT", 10),
			NoticeTimeout: getEnvAsInt("NOTICE_TIMEOUT", 3),
			ProviderID:    getEnvAsInt("PROVIDER_ID", 1),
		},
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Auth: AuthConfig{
			APIKeys: getEnvAsSlice("API_KEYS", []string{"apitest"}),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("STOREFRONT_LOG_FILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	u, err := url.Parse(c.Client.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL: %q", c.Client.BaseURL)
	}

	if c.Client.PageSize <= 0 || c.Client.PageSize > 100 {
		return fmt.Errorf("PAGE_SIZE must be between 1 and 100, got %d", c.Client.PageSize)
	}

	if c.Client.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %d", c.Client.HTTPTimeout)
	}

	if c.Client.NoticeTimeout <= 0 {
		return fmt.Errorf("NOTICE_TIMEOUT must be positive, got %d", c.Client.NoticeTimeout)
	}

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("at least one API key must be configured")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
