package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"lyricspider/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port          string
	DBPath        string
	GeniusBaseURL string

	SearchWorkers int
	FetchWorkers  int
	SearchDelay   time.Duration
	FetchDelay    time.Duration
	HTTPTimeout   time.Duration

	LogLevel  string
	LogFormat string

	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRedirectURI  string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", constants.DefaultPort),
		DBPath:        getEnv("DB_PATH", constants.DefaultDBPath),
		GeniusBaseURL: getEnv("GENIUS_BASE_URL", constants.DefaultGeniusBaseURL),

		SearchWorkers: getEnvInt("SEARCH_WORKERS", constants.DefaultSearchWorkers),
		FetchWorkers:  getEnvInt("FETCH_WORKERS", constants.DefaultFetchWorkers),
		SearchDelay:   getEnvDuration("SEARCH_DELAY", constants.DefaultSearchDelay),
		FetchDelay:    getEnvDuration("FETCH_DELAY", constants.DefaultFetchDelay),
		HTTPTimeout:   getEnvDuration("HTTP_TIMEOUT", constants.DefaultHTTPTimeout),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		SpotifyClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
		SpotifyRedirectURI:  getEnv("SPOTIFY_REDIRECT_URI", "http://localhost:8888/callback"),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	if c.GeniusBaseURL == "" {
		errors = append(errors, "GENIUS_BASE_URL cannot be empty")
	} else if _, err := url.Parse(c.GeniusBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("GENIUS_BASE_URL is not a valid URL: %s", c.GeniusBaseURL))
	}

	if c.SearchWorkers < 1 {
		errors = append(errors, fmt.Sprintf("SEARCH_WORKERS must be at least 1, got: %d", c.SearchWorkers))
	}
	if c.FetchWorkers < 1 {
		errors = append(errors, fmt.Sprintf("FETCH_WORKERS must be at least 1, got: %d", c.FetchWorkers))
	}
	if c.SearchDelay < 0 {
		errors = append(errors, "SEARCH_DELAY cannot be negative")
	}
	if c.FetchDelay < 0 {
		errors = append(errors, "FETCH_DELAY cannot be negative")
	}
	if c.HTTPTimeout <= 0 {
		errors = append(errors, "HTTP_TIMEOUT must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// ValidateSpotify checks the credentials required by the sync command.
// They are optional for every other command, so they are not part of Validate.
func (c *Config) ValidateSpotify() error {
	var errors []string

	if c.SpotifyClientID == "" {
		errors = append(errors, "SPOTIFY_CLIENT_ID cannot be empty")
	}
	if c.SpotifyClientSecret == "" {
		errors = append(errors, "SPOTIFY_CLIENT_SECRET cannot be empty")
	}
	if c.SpotifyRedirectURI == "" {
		errors = append(errors, "SPOTIFY_REDIRECT_URI cannot be empty")
	} else if _, err := url.Parse(c.SpotifyRedirectURI); err != nil {
		errors = append(errors, fmt.Sprintf("SPOTIFY_REDIRECT_URI is not a valid URL: %s", c.SpotifyRedirectURI))
	}

	if len(errors) > 0 {
		return fmt.Errorf("spotify configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
