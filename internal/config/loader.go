package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables read by Load.
const (
	EnvPrefix     = "TEAMFORGE_"
	EnvConfigFile = "TEAMFORGE_CONFIG"
)

// LoadOption tweaks a single Load call.
type LoadOption func(*loadOptions)

type loadOptions struct {
	file string
}

// WithFile loads the given YAML file instead of the one named by
// TEAMFORGE_CONFIG.
func WithFile(path string) LoadOption {
	return func(o *loadOptions) {
		o.file = path
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) from WithFile or TEAMFORGE_CONFIG
//  3. env (prefix TEAMFORGE_)
func Load(_ context.Context, opts ...LoadOption) (*Config, error) {
	o := loadOptions{file: os.Getenv(EnvConfigFile)}
	for _, opt := range opts {
		opt(&o)
	}

	base := New()
	k := koanf.New(".")

	if o.file != "" {
		if err := k.Load(file.Provider(o.file), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, o.file, err)
		}
	}

	// TEAMFORGE_TEAMS_FILE -> teams_file; underscores are kept to match the
	// flat koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ToLower(s)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if strings.TrimSpace(c.ParticipantsFile) == "" {
		return fmt.Errorf("%w: participants_file must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.TeamsFile) == "" {
		return fmt.Errorf("%w: teams_file must not be empty", ErrInvalidConfig)
	}
	if c.DefaultTeamSize < 1 {
		return fmt.Errorf("%w: default_team_size must be positive, got %d", ErrInvalidConfig, c.DefaultTeamSize)
	}
	return nil
}
