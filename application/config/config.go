// Package config holds the runtime configuration of the permgrant tool.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/reglet-dev/reglet-permissions/domain/entities"
	"github.com/reglet-dev/reglet-permissions/domain/flags"
)

// validate is a package-level singleton; validator caches struct metadata.
var validate = validator.New()

// Config is the decoded and validated tool configuration.
type Config struct {
	// GrantsFile is the YAML grants file read at startup. Empty means the
	// default location.
	GrantsFile string `json:"grants_file" mapstructure:"grants_file" validate:"omitempty,filepath"`

	// Allow lists --allow-<kind>[=<value>] flags granted up front.
	Allow []string `json:"allow" mapstructure:"allow" validate:"dive,startswith=--allow-"`

	// Prompt is one of auto, always or never.
	Prompt string `json:"prompt" mapstructure:"prompt" validate:"oneof=auto always never"`

	Verbose bool `json:"verbose" mapstructure:"verbose"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{Prompt: "auto"}
}

// Validate checks cfg against its validation tags and parses every allow
// flag, so an unknown kind is reported before any host is built.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if _, err := flags.ParseAll(cfg.Allow); err != nil {
		return fmt.Errorf("config validation failed: allow: %w", err)
	}
	return nil
}

// FromMap decodes a loosely typed settings map into a Config and validates
// it. Unset keys keep their defaults.
func FromMap(settings map[string]any) (*Config, error) {
	jsonBytes, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config map: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(jsonBytes, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Grants returns the allow flags as a grant table.
func (c *Config) Grants() (*entities.GrantSet, error) {
	return flags.ToGrantSet(c.Allow)
}
