package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBPath string

	// External food database configuration
	FoodAPIBaseURL string

	// Allowed CORS origins for the web client
	AllowedOrigins []string
}

// LoadConfig creates a new Config instance from environment variables,
// falling back to defaults suitable for local development.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment:    GetEnvironment(),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DBPath:         getEnv("DB_PATH", "macrolog.db"),
		FoodAPIBaseURL: os.Getenv("FOOD_API_BASE_URL"),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// Validate checks that the configuration is usable. Production refuses to
// fall back to a database file in the working directory.
func (c *Config) Validate() error {
	var errors []string

	if c.ServerPort == "" {
		errors = append(errors, "SERVER_PORT must not be empty")
	}
	if c.DBPath == "" {
		errors = append(errors, "DB_PATH must not be empty")
	}
	if c.Environment == Production {
		if os.Getenv("DB_PATH") == "" {
			errors = append(errors, "DB_PATH must be set explicitly in production")
		}
		if len(c.AllowedOrigins) == 0 {
			errors = append(errors, "ALLOWED_ORIGINS must be set in production")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}
