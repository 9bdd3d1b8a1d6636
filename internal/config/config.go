package config

import (
	"os"
	"strconv"
	"time"

	"hypotourney/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Analysis AnalysisConfig
	Export   ExportConfig
}

// DatabaseConfig holds database connection settings. URL empty means the
// in-memory repositories are used instead of postgres.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// AnalysisConfig holds the external analysis service settings
type AnalysisConfig struct {
	BaseURL      string
	PollInterval time.Duration
	MaxAttempts  int
}

// ExportConfig holds debrief export settings
type ExportConfig struct {
	Dir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Analysis: AnalysisConfig{
			BaseURL:      os.Getenv("ANALYSIS_URL"),
			PollInterval: getEnvDurationOrDefault("ANALYSIS_POLL_INTERVAL", 2*time.Second),
			MaxAttempts:  getEnvIntOrDefault("ANALYSIS_MAX_ATTEMPTS", 30),
		},
		Export: ExportConfig{
			Dir: getEnvOrDefault("EXPORT_DIR", "./exports"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Analysis.MaxAttempts <= 0 {
		return errors.ConfigInvalid("ANALYSIS_MAX_ATTEMPTS must be positive")
	}
	if config.Analysis.PollInterval <= 0 {
		return errors.ConfigInvalid("ANALYSIS_POLL_INTERVAL must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
