// Package config loads the run configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/naka-gawa/readme-stats/internal/domain"
)

// Default section markers.
const (
	DefaultStartMarker = "<!--START_SECTION:my_stats-->"
	DefaultEndMarker   = "<!--END_SECTION:my_stats-->"
)

// Config is everything a run needs from outside the process.
type Config struct {
	Token         string `env:"GH_TOKEN,notEmpty"`     // bearer token, a PAT is needed for private counts
	Login         string `env:"GITHUB_ACTOR,notEmpty"` // target account
	Endpoint      string `env:"GITHUB_GRAPHQL_URL" envDefault:"https://api.github.com/graphql"`
	Document      string `env:"PROFILE_README" envDefault:"README.md"`
	StartMarker   string `env:"PROFILE_START_MARKER" envDefault:"<!--START_SECTION:my_stats-->"`
	EndMarker     string `env:"PROFILE_END_MARKER" envDefault:"<!--END_SECTION:my_stats-->"`
	FallbackColor string `env:"PROFILE_FALLBACK_COLOR" envDefault:"#cccccc"`
}

// Load reads envFile when it exists, without overriding variables that are
// already set, then parses and validates the configuration.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.ConfigError{Reason: fmt.Sprintf("load %s", envFile), Err: err}
		}
	}
	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, &domain.ConfigError{Reason: "parse environment", Err: err}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	if c.StartMarker == "" {
		return &domain.ConfigError{Key: "PROFILE_START_MARKER", Reason: "must not be empty"}
	}
	if c.EndMarker == "" {
		return &domain.ConfigError{Key: "PROFILE_END_MARKER", Reason: "must not be empty"}
	}
	if c.Document == "" {
		return &domain.ConfigError{Key: "PROFILE_README", Reason: "must not be empty"}
	}
	return nil
}
