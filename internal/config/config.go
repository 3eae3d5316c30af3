// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Storage
	DatabasePath string // Path to SQLite file
	CatalogPath  string // Optional holiday catalog override; empty uses the embedded catalog

	// Authentication
	APIKey string // API key for authenticated endpoints

	// Reminders
	Timezone       string // IANA timezone all "today" math is relative to
	ReminderHour   int    // Hour of the daily reminder run (0-23)
	ReminderMinute int    // Minute of the daily reminder run (0-59)
	WindowDays     int    // Default resolution window for upcoming queries

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Port = getEnvInt("PORT", 8080)
	cfg.Env = getEnv("ENV", EnvDevelopment)

	cfg.DatabasePath = getEnv("DATABASE_PATH", "./data/kindred.db")
	cfg.CatalogPath = getEnv("CATALOG_PATH", "")

	cfg.APIKey = getEnv("API_KEY", "")

	cfg.Timezone = getEnv("USER_TIMEZONE", "America/New_York")
	cfg.ReminderHour = getEnvInt("REMINDER_HOUR", 8)
	cfg.ReminderMinute = getEnvInt("REMINDER_MINUTE", 0)
	cfg.WindowDays = getEnvInt("REMINDER_WINDOW_DAYS", 30)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
		// Valid
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	// API key is required in production
	if c.Env == EnvProduction && c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required in production"))
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("USER_TIMEZONE %q is not a valid IANA timezone: %w", c.Timezone, err))
	}

	if c.ReminderHour < 0 || c.ReminderHour > 23 {
		errs = append(errs, fmt.Errorf("REMINDER_HOUR must be between 0 and 23, got %d", c.ReminderHour))
	}
	if c.ReminderMinute < 0 || c.ReminderMinute > 59 {
		errs = append(errs, fmt.Errorf("REMINDER_MINUTE must be between 0 and 59, got %d", c.ReminderMinute))
	}
	if c.WindowDays < 1 || c.WindowDays > 365 {
		errs = append(errs, fmt.Errorf("REMINDER_WINDOW_DAYS must be between 1 and 365, got %d", c.WindowDays))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Location returns the configured timezone. Validate guarantees the
// timezone loads, so the UTC fallback is unreachable after a successful
// Load.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
