// Package config loads healthctl settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AmzurATG/heatlhcare-demo/client"
	"github.com/AmzurATG/heatlhcare-demo/internal/logger"
)

// Config holds CLI configuration.
type Config struct {
	Client   *client.Config
	LogLevel zerolog.Level
}

// Load reads envFile (if present) into the process environment without
// overriding variables that are already set, then parses HEALTHCARE_*
// and LOG_LEVEL.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	cc, err := client.LoadConfig()
	if err != nil {
		return nil, err
	}
	return &Config{
		Client:   cc,
		LogLevel: logger.ParseLevel(os.Getenv("LOG_LEVEL")),
	}, nil
}

// Init sets up console logging; debug forces debug level.
func (c *Config) Init(debug bool) {
	level := c.LogLevel
	if debug || c.Client.Debug {
		level = zerolog.DebugLevel
	}
	logger.InitConsole(level)

	log.Debug().
		Str("api_url", c.Client.APIURL).
		Dur("timeout", c.Client.Timeout).
		Str("log_level", level.String()).
		Msg("configuration loaded")
}
