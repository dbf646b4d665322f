// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Environment variables that back empty config fields
const (
	EnvAPIKey      = "GEMINI_API_KEY"
	EnvRedisURL    = "REDIS_URL"
	EnvDatabaseURL = "DATABASE_URL"
)

// Defaults applied by MergeWithDefaults when neither the file nor flags set a value
const (
	DefaultLocale         = "en"
	DefaultModelTier      = "standard"
	DefaultTimeoutSeconds = 60
	DefaultMaxTokens      = 4096
	DefaultTemperature    = 0.4
	DefaultCacheTTL       = 24 * 60 * 60
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	DefaultConcurrency    = 4
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Request
	Locale         string `json:"locale,omitempty" validate:"omitempty,oneof=en ar"` // Output language
	TargetIndustry string `json:"target_industry,omitempty"`                          // Industry the candidate is aiming for
	UserID         string `json:"user_id,omitempty"`                                  // Attached to usage records

	// Generative adapter
	APIKey         string  `json:"api_key,omitempty"`                                          // Gemini API key
	ModelTier      string  `json:"model_tier,omitempty" validate:"omitempty,oneof=lite standard advanced"`
	Model          string  `json:"model,omitempty"` // Overrides the model of ModelTier
	TimeoutSeconds int     `json:"timeout_seconds,omitempty" validate:"gte=0"`
	MaxTokens      int     `json:"max_tokens,omitempty" validate:"gte=0"`
	Temperature    float64 `json:"temperature,omitempty" validate:"gte=0,lte=2"`

	// Storage
	RedisURL        string `json:"redis_url,omitempty"`         // Response cache; empty disables caching
	CacheTTLSeconds int    `json:"cache_ttl_seconds,omitempty" validate:"gte=0"`
	DatabaseURL     string `json:"database_url,omitempty"` // PostgreSQL connection URL for usage records
	SalaryTable     string `json:"salary_table,omitempty"` // JSON salary table replacing the built-in one

	// Behavior
	LogLevel    string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat   string `json:"log_format,omitempty" validate:"omitempty,oneof=json console"`
	Concurrency int    `json:"concurrency,omitempty" validate:"gte=0,lte=64"` // Parallel analyses in batch mode
	Verbose     bool   `json:"verbose,omitempty"`                             // Print a readable summary to stderr
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields; without an API key every
// analysis is built from fallback content.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Locale == "" {
		result.Locale = defaults.Locale
	}
	if result.TargetIndustry == "" {
		result.TargetIndustry = defaults.TargetIndustry
	}
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ModelTier == "" {
		result.ModelTier = defaults.ModelTier
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SalaryTable == "" {
		result.SalaryTable = defaults.SalaryTable
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Numeric fields: use default if zero
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.MaxTokens == 0 {
		result.MaxTokens = defaults.MaxTokens
	}
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if result.CacheTTLSeconds == 0 {
		result.CacheTTLSeconds = defaults.CacheTTLSeconds
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Defaults returns the built-in defaults with secrets and URLs taken from
// the environment.
func Defaults() Config {
	return Config{
		Locale:          DefaultLocale,
		APIKey:          os.Getenv(EnvAPIKey),
		ModelTier:       DefaultModelTier,
		TimeoutSeconds:  DefaultTimeoutSeconds,
		MaxTokens:       DefaultMaxTokens,
		Temperature:     DefaultTemperature,
		RedisURL:        os.Getenv(EnvRedisURL),
		CacheTTLSeconds: DefaultCacheTTL,
		DatabaseURL:     os.Getenv(EnvDatabaseURL),
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
		Concurrency:     DefaultConcurrency,
	}
}

// Timeout is the adapter timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL is the response cache lifetime as a duration
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
