// internal/config/config.go
// Centralized configuration management
// Loads from environment variables with sensible defaults

package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds all client runtime configuration
type Config struct {
	// API
	APIBaseURL     string
	RequestTimeout time.Duration

	// Push channel
	SocketURL string

	// Local persisted state (auth token, theme); empty means the default
	// location under the user config dir
	StatePath string

	// Runtime
	Environment string
	LogLevel    string
	MetricsAddr string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:8080/api"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", "30s"),
		SocketURL:      getEnv("SOCKET_URL", "ws://localhost:8080/ws"),
		StatePath:      getEnv("STATE_PATH", ""),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MetricsAddr:    getEnv("METRICS_ADDR", ":9091"),
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL is not a valid URL: %q", c.APIBaseURL)
	}

	s, err := url.Parse(c.SocketURL)
	if err != nil || (s.Scheme != "ws" && s.Scheme != "wss") {
		return fmt.Errorf("SOCKET_URL must be a ws:// or wss:// URL: %q", c.SocketURL)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	return nil
}

// getEnv gets a string value from environment with a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration gets a duration value from environment with a default
func getEnvDuration(key string, defaultValue string) time.Duration {
	value := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
