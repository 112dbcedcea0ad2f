package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Run        RunConfig
	Candidates CandidatesConfig
	S3         S3Config
	Session    SessionConfig
	Output     OutputConfig
	Store      StoreConfig
	Logger     LoggerConfig
}

// RunConfig holds redemption run options.
type RunConfig struct {
	Mode  string // "auto", "confirm" or "export"
	Quiet bool
}

// CandidatesConfig holds the candidate key list location.
type CandidatesConfig struct {
	Path   string
	Format string // "csv", "text" or "yaml"
}

// S3Config holds AWS S3 configuration for candidate files.
type S3Config struct {
	Enabled  bool
	Bucket   string
	Region   string
	Prefix   string // Path prefix within bucket (e.g., "keys/")
	Endpoint string // Custom endpoint for S3-compatible stores
}

// SessionConfig holds where the signed-in session is persisted.
type SessionConfig struct {
	File string
}

// OutputConfig holds where outcome files are written.
type OutputConfig struct {
	Dir string
}

// StoreConfig holds store transport configuration.
type StoreConfig struct {
	BaseURL    string
	APIBaseURL string
	Timeout    int // seconds
	RateLimit  float64
	RateBurst  int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Run: RunConfig{
			Mode:  getEnv("REDEEM_MODE", "auto"),
			Quiet: getEnvAsBool("REDEEM_QUIET", false),
		},
		Candidates: CandidatesConfig{
			Path:   getEnv("CANDIDATES_PATH", "keys.csv"),
			Format: getEnv("CANDIDATES_FORMAT", "csv"),
		},
		S3: S3Config{
			Enabled:  getEnvAsBool("S3_ENABLED", false),
			Bucket:   getEnv("S3_BUCKET", ""),
			Region:   getEnv("S3_REGION", "us-east-1"),
			Prefix:   getEnv("S3_PREFIX", "keys/"),
			Endpoint: getEnv("S3_ENDPOINT", ""),
		},
		Session: SessionConfig{
			File: getEnv("SESSION_FILE", ".steamcookies"),
		},
		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", "."),
		},
		Store: StoreConfig{
			BaseURL:    getEnv("STORE_BASE_URL", "https://store.steampowered.com"),
			APIBaseURL: getEnv("API_BASE_URL", "https://api.steampowered.com"),
			Timeout:    getEnvAsInt("HTTP_TIMEOUT", 30),
			RateLimit:  getEnvAsFloat("RATE_LIMIT", 0.5),
			RateBurst:  getEnvAsInt("RATE_BURST", 1),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Run.Mode {
	case "auto", "confirm", "export":
	default:
		return fmt.Errorf("invalid run mode: %s (must be auto, confirm, or export)", c.Run.Mode)
	}

	if c.Candidates.Path == "" {
		return fmt.Errorf("candidates path is required")
	}

	switch c.Candidates.Format {
	case "csv", "text", "yaml":
	default:
		return fmt.Errorf("invalid candidates format: %s (must be csv, text, or yaml)", c.Candidates.Format)
	}

	if c.Session.File == "" {
		return fmt.Errorf("session file is required")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output directory is required")
	}

	if c.Store.BaseURL == "" || c.Store.APIBaseURL == "" {
		return fmt.Errorf("store base URLs are required")
	}

	if c.Store.Timeout < 1 {
		return fmt.Errorf("invalid HTTP timeout: %d", c.Store.Timeout)
	}

	if c.Store.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}

	if c.Store.RateBurst < 1 {
		return fmt.Errorf("rate burst must be at least 1")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

// HTTPTimeout returns the per-request timeout.
func (c *StoreConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
