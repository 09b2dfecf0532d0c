package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the tail configuration loaded from environment variables.
type Config struct {
	// Source is the stream to read: an http(s) URL, a file path, or "-"
	// for stdin. A positional argument overrides AGENTWIRE_URL.
	Source string

	LogLevel string // debug, info, warn, error

	// AuthToken is sent as a bearer token when Source is a URL.
	AuthToken string

	// Format selects the output: "text" for human-readable lines,
	// "agui" for AG-UI protocol events as JSON lines.
	Format string

	// Timeout bounds the whole read. Zero means no limit.
	Timeout time.Duration

	// RetryAttempts bounds connection attempts when Source is a URL.
	RetryAttempts int
}

// LoadConfig loads configuration from environment variables and args.
// It loads a .env file if present (silent fail if not found).
func LoadConfig(args []string) (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{
		Source:    getEnvOrDefault("AGENTWIRE_URL", "-"),
		LogLevel:  getEnvOrDefault("AGENTWIRE_LOG_LEVEL", "warn"),
		AuthToken: os.Getenv("AGENTWIRE_AUTH_TOKEN"),
		Format:    getEnvOrDefault("AGENTWIRE_FORMAT", "text"),
		Timeout:   getEnvDurationOrDefault("AGENTWIRE_TIMEOUT", 0),

		RetryAttempts: getEnvIntOrDefault("AGENTWIRE_RETRIES", 5),
	}
	if len(args) > 0 {
		cfg.Source = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("a stream source is required (URL, file path, or - for stdin)")
	}
	switch c.Format {
	case "text", "agui":
	default:
		return fmt.Errorf("unknown format: %s (must be text or agui)", c.Format)
	}
	return nil
}

// SlogLevel converts the configured level name to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
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
