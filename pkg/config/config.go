package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Extraction    ExtractionConfig
	Database      DatabaseConfig
	Rules         RulesConfig
	Observability ObservabilityConfig
}

type ExtractionConfig struct {
	// Strategy selects the extraction flow: "dashboard" or "api".
	Strategy string
	// MissingDatePolicy overrides the strategy default: "absent" or "now".
	// Empty keeps the default.
	MissingDatePolicy string
	DefaultCurrency   string
}

type DatabaseConfig struct {
	// Enabled turns on receipt persistence. Parse-only mode needs no database.
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type RulesConfig struct {
	// Path to the category keyword rules JSON file. Empty falls back to the
	// built-in vendor table only.
	Path string
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	MetricsPort    int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Extraction: ExtractionConfig{
			Strategy:          getEnv("EXTRACTION_STRATEGY", "dashboard"),
			MissingDatePolicy: getEnv("EXTRACTION_MISSING_DATE", ""),
			DefaultCurrency:   getEnv("EXTRACTION_DEFAULT_CURRENCY", "₹"),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("POSTGRES_ENABLED", false),
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "receipts-dev"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Rules: RulesConfig{
			Path: getEnv("CATEGORY_RULES_PATH", ""),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", false),
			MetricsPort:    getEnvAsInt("METRICS_PORT", 9090),
		},
	}

	switch cfg.Extraction.Strategy {
	case "dashboard", "api":
	default:
		return nil, fmt.Errorf("invalid EXTRACTION_STRATEGY %q", cfg.Extraction.Strategy)
	}

	switch cfg.Extraction.MissingDatePolicy {
	case "", "absent", "now":
	default:
		return nil, fmt.Errorf("invalid EXTRACTION_MISSING_DATE %q", cfg.Extraction.MissingDatePolicy)
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
