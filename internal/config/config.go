package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the timeline service.
// Environment variables are parsed from the TIMELINE_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage. Driver selects the backing database for the source tables.
	DBDriver    string `envconfig:"DB_DRIVER" default:"postgres"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"./data/timeline.db"`

	// Aggregation tuning
	SlowQueryThresholdMs int  `envconfig:"SLOW_QUERY_THRESHOLD_MS" default:"1000"`
	AdapterTimeoutMs     int  `envconfig:"ADAPTER_TIMEOUT_MS" default:"5000"`
	MetricsEnabled       bool `envconfig:"METRICS_ENABLED" default:"true"`
}

// ResolveDefaults validates the driver selection and its required settings.
func (c *Config) ResolveDefaults() error {
	switch c.DBDriver {
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("TIMELINE_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("TIMELINE_SQLITE_PATH is required when DB_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.SlowQueryThresholdMs <= 0 {
		return fmt.Errorf("SLOW_QUERY_THRESHOLD_MS must be positive")
	}
	if c.AdapterTimeoutMs <= 0 {
		return fmt.Errorf("ADAPTER_TIMEOUT_MS must be positive")
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Example: TIMELINE_HTTP_PORT, TIMELINE_DB_DRIVER, TIMELINE_POSTGRES_DSN.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("TIMELINE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Int("slow_query_threshold_ms", cfg.SlowQueryThresholdMs).
		Int("adapter_timeout_ms", cfg.AdapterTimeoutMs).
		Bool("metrics_enabled", cfg.MetricsEnabled).
		Str("postgres_dsn_present", func() string {
			if cfg.PostgresDSN != "" {
				return "true"
			}
			return "false"
		}()).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	return &Config{
		Environment:          EnvTesting,
		LogLevel:             "debug",
		HTTPPort:             8080,
		DBDriver:             "sqlite",
		SQLitePath:           "file::memory:?cache=shared",
		SlowQueryThresholdMs: 1000,
		AdapterTimeoutMs:     5000,
		MetricsEnabled:       false,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
