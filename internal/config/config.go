package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds extension configuration.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `env:"ADDR" envDefault:":8080"`
	// HostBaseURL is the base URL of the host REST API.
	HostBaseURL string `env:"HOST_BASE_URL" envDefault:"http://app.redforester.com/api"`
	// HostTimeout bounds each outbound call to the host API.
	HostTimeout time.Duration `env:"HOST_TIMEOUT" envDefault:"10s"`

	// BaseURL is the externally reachable address of this extension.
	BaseURL     string `env:"BASE_URL" envDefault:"http://0.0.0.0:8080"`
	Name        string `env:"NAME" envDefault:"test-extension"`
	Description string `env:"DESCRIPTION" envDefault:"test extension description"`
	Email       string `env:"EMAIL" envDefault:"you.public.email@domain"`

	DatabasePath string `env:"DATABASE_PATH" envDefault:"./rfext.db"`
	// MasterSecret seals stored service tokens and signs view links.
	MasterSecret string `env:"MASTER_SECRET"`

	// ExposeTraceback includes handler fault detail in 500 responses.
	ExposeTraceback bool     `env:"EXPOSE_TRACEBACK" envDefault:"true"`
	Debug           bool     `env:"DEBUG"`
	LogLevel        string   `env:"LOG_LEVEL" envDefault:"info"`
	AllowedOrigins  []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	OTelEndpoint    string   `env:"OTEL_ENDPOINT"`

	// OwnerCookie authenticates the extension owner for registration and
	// assignment. Only the admin tool reads it.
	OwnerCookie string `env:"OWNER_COOKIE"`
}

// Overrides optionally overrides values from environment variables.
//
// A nil pointer means "use the environment/default value".
type Overrides struct {
	Addr         *string
	HostBaseURL  *string
	BaseURL      *string
	DatabasePath *string
	MasterSecret *string
	Debug        *bool
	OwnerCookie  *string
}

// Options controls which settings Load insists on.
type Options struct {
	// RequireSecret makes a missing master secret an error.
	RequireSecret bool
}

// Load loads configuration from RFEXT_* environment variables and applies
// any explicit overrides.
func Load(overrides Overrides, opts Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "RFEXT_"}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if overrides.Addr != nil {
		cfg.Addr = *overrides.Addr
	}
	if overrides.HostBaseURL != nil {
		cfg.HostBaseURL = *overrides.HostBaseURL
	}
	if overrides.BaseURL != nil {
		cfg.BaseURL = *overrides.BaseURL
	}
	if overrides.DatabasePath != nil {
		cfg.DatabasePath = *overrides.DatabasePath
	}
	if overrides.MasterSecret != nil {
		cfg.MasterSecret = *overrides.MasterSecret
	}
	if overrides.Debug != nil {
		cfg.Debug = *overrides.Debug
	}
	if overrides.OwnerCookie != nil {
		cfg.OwnerCookie = *overrides.OwnerCookie
	}

	cfg.HostBaseURL = strings.TrimRight(cfg.HostBaseURL, "/")
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.HostBaseURL == "" {
		return nil, fmt.Errorf("RFEXT_HOST_BASE_URL must not be empty")
	}
	if cfg.HostTimeout <= 0 {
		return nil, fmt.Errorf("RFEXT_HOST_TIMEOUT must be positive")
	}
	if opts.RequireSecret && cfg.MasterSecret == "" {
		return nil, fmt.Errorf("RFEXT_MASTER_SECRET environment variable is required")
	}

	return cfg, nil
}
