package client

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the environment-driven client settings. Each field maps to a
// HEALTHCARE_* variable, e.g. APIURL is HEALTHCARE_API_URL.
type Config struct {
	APIURL    string        `envconfig:"API_URL" default:"http://localhost:8000"`
	Timeout   time.Duration `envconfig:"TIMEOUT" default:"30s"`
	Debug     bool          `envconfig:"DEBUG" default:"false"`
	APIKey    string        `envconfig:"API_KEY"`
	UserAgent string        `envconfig:"USER_AGENT"`
}

// LoadConfig reads HEALTHCARE_* variables into a Config.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("HEALTHCARE", &cfg); err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("load client config: HEALTHCARE_TIMEOUT must be > 0")
	}
	return &cfg, nil
}

// Options converts cfg into construction options for New.
func (c *Config) Options() []Option {
	opts := []Option{WithHTTPTimeout(c.Timeout)}
	if c.Debug {
		opts = append(opts, WithDebugLogging(true))
	}
	if c.APIKey != "" {
		opts = append(opts, WithAPIKey(c.APIKey))
	}
	if c.UserAgent != "" {
		opts = append(opts, WithUserAgent(c.UserAgent))
	}
	return opts
}
