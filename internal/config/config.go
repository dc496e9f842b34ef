// Package config loads service configuration from GRIMOIRE_-prefixed
// environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the grimoire service.
// Environment variables are parsed from the GRIMOIRE_ prefix, e.g.
// GRIMOIRE_HTTP_PORT, GRIMOIRE_BUILD_TARGET.
type Config struct {
	// Build target selects the high-level environment: local, cloud-dev, cloud.
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// Derived or override document store driver: memory, sqlite, postgres.
	DocstoreDriver string `envconfig:"DOCSTORE_DRIVER" default:"auto"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Postgres Configuration
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// SQLite Configuration
	SQLitePath string `envconfig:"SQLITE_PATH" default:"./data/grimoire.db"`

	// Gemini Configuration
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY" default:""`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:""`

	// Stripe Configuration
	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY" default:""`
	StripeBaseURL   string `envconfig:"STRIPE_BASE_URL" default:""`

	// Auth Configuration. Dev mode accepts "dev-<userId>" bearer tokens.
	DevMode bool `envconfig:"DEV_MODE" default:"false"`

	// SupportAPIKey authorizes agent-side ticket operations. Empty disables
	// the agent endpoints.
	SupportAPIKey string `envconfig:"SUPPORT_API_KEY" default:""`
}

// ResolveDefaults validates BuildTarget and derives DocstoreDriver when it
// is "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDriver string
	switch c.BuildTarget {
	case "local":
		defaultDriver = "sqlite"
	case "cloud-dev", "cloud":
		defaultDriver = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DocstoreDriver == "" || c.DocstoreDriver == "auto" {
		c.DocstoreDriver = defaultDriver
	}

	allowed := map[string]bool{"memory": true, "sqlite": true, "postgres": true}
	if !allowed[c.DocstoreDriver] {
		return fmt.Errorf("unsupported DOCSTORE_DRIVER: %s", c.DocstoreDriver)
	}
	if c.DocstoreDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("GRIMOIRE_POSTGRES_DSN required for the postgres driver")
	}
	return nil
}

// New creates a Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("GRIMOIRE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("docstore_driver", cfg.DocstoreDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Bool("dev_mode", cfg.DevMode).
		Bool("gemini_configured", cfg.GeminiAPIKey != "").
		Bool("stripe_configured", cfg.StripeSecretKey != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config for tests: in-memory docstore, dev auth.
func NewForTesting() *Config {
	return &Config{
		BuildTarget:    "local",
		DocstoreDriver: "memory",
		Environment:    EnvTesting,
		HTTPPort:       8080,
		DevMode:        true,
	}
}

// IsProduction returns true if the environment is set to production.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
