package config

import (
	"os"
	"strconv"

	"lastmile/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	ShutdownSeconds int
}

// DataConfig holds dataset source settings
type DataConfig struct {
	// SourceFile is the delivery dataset the server loads sessions from.
	SourceFile string
	// MaxSessions caps concurrently held sessions in the in-memory manager.
	MaxSessions int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8080"),
			ShutdownSeconds: getEnvIntOrDefault("SHUTDOWN_SECONDS", 10),
		},
		Data: DataConfig{
			SourceFile:  os.Getenv("DATA_FILE"),
			MaxSessions: getEnvIntOrDefault("MAX_SESSIONS", 64),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Data.SourceFile == "" {
		return errors.ConfigInvalid("DATA_FILE is required")
	}
	if config.Data.MaxSessions <= 0 {
		return errors.ConfigInvalid("MAX_SESSIONS must be positive")
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
