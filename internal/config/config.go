// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ukaji3/xltables-go/internal/logging"
	"github.com/ukaji3/xltables-go/pkg/xltables"
)

// Config represents the complete application configuration
type Config struct {
	Workbook WorkbookConfig
	Server   ServerConfig
	LogLevel logging.Level
}

// WorkbookConfig holds the workbook source settings
type WorkbookConfig struct {
	Source       string
	FetchTimeout time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// Addr returns the listen address for the configured port.
func (s ServerConfig) Addr() string {
	if strings.Contains(s.Port, ":") {
		return s.Port
	}
	return ":" + s.Port
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Workbook: WorkbookConfig{
			Source:       getEnvOrDefault("WORKBOOK_URL", xltables.DefaultSource),
			FetchTimeout: getEnvDurationOrDefault("FETCH_TIMEOUT", xltables.DefaultTimeout),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		LogLevel: logging.ParseLevel(getEnvOrDefault("LOG_LEVEL", "INFO")),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Workbook.Source) == "" {
		return fmt.Errorf("workbook source is required")
	}
	if c.Workbook.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.Workbook.FetchTimeout)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	return nil
}

// Options converts the configuration into extraction options.
func (c *Config) Options(logger xltables.Logger) xltables.Options {
	opts := xltables.DefaultOptions()
	opts.Source = c.Workbook.Source
	opts.Timeout = c.Workbook.FetchTimeout
	opts.Logger = logger
	return opts
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
