package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultMaxResults = 10
	// MaxResultsLimit is the largest page size search.list accepts.
	MaxResultsLimit = 50
)

type Config struct {
	YouTube YouTubeConfig
	Search  SearchConfig
	Report  ReportConfig
	Logging LoggingConfig
}

type YouTubeConfig struct {
	APIKey           string
	ClientSecretFile string
	TokenFile        string
}

type SearchConfig struct {
	MaxResults int64
}

type ReportConfig struct {
	Save bool
	Dir  string
}

type LoggingConfig struct {
	Level string
	File  string
}

// Load reads .env (if present) and the process environment.
// Credentials are not validated here; see auth.Resolve.
func Load() (*Config, error) {
	_ = godotenv.Load()

	maxResults, err := getEnvInt64("YOUTUBE_MAX_RESULTS", DefaultMaxResults)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := &Config{
		YouTube: YouTubeConfig{
			APIKey:           strings.TrimSpace(getEnv("YOUTUBE_API_KEY", "")),
			ClientSecretFile: strings.TrimSpace(getEnv("CLIENT_SECRET_FILE", "")),
			TokenFile:        strings.TrimSpace(getEnv("OAUTH_TOKEN_FILE", "")),
		},
		Search: SearchConfig{
			MaxResults: maxResults,
		},
		Report: ReportConfig{
			Save: getEnvBool("REPORT_SAVE", true),
			Dir:  getEnv("REPORT_DIR", "."),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "warn"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("YOUTUBE_MAX_RESULTS must be a positive integer")
	}
	if c.Search.MaxResults > MaxResultsLimit {
		return fmt.Errorf("YOUTUBE_MAX_RESULTS must not exceed %d", MaxResultsLimit)
	}
	if c.Report.Save && strings.TrimSpace(c.Report.Dir) == "" {
		return fmt.Errorf("REPORT_DIR must not be empty when REPORT_SAVE is enabled")
	}
	return nil
}

// HasAPIKey reports whether a static API key was configured.
func (c YouTubeConfig) HasAPIKey() bool {
	return c.APIKey != ""
}

// HasClientSecret reports whether a delegated-auth secrets reference was configured.
func (c YouTubeConfig) HasClientSecret() bool {
	return c.ClientSecretFile != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	intVal, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a positive integer: %q", key, value)
	}
	return intVal, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
