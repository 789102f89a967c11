package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/ehr/tnmstage/internal/domain/staging"
)

type Config struct {
	Env           string `mapstructure:"ENV"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	OutputFormat  string `mapstructure:"OUTPUT_FORMAT"`
	StagingSystem string `mapstructure:"STAGING_SYSTEM"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("OUTPUT_FORMAT", "json")
	v.SetDefault("STAGING_SYSTEM", staging.Edition)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("ENV")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("OUTPUT_FORMAT")
	v.BindEnv("STAGING_SYSTEM")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.OutputFormat = strings.ToLower(cfg.OutputFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Level returns the parsed zerolog level, info when LOG_LEVEL is empty.
func (c *Config) Level() zerolog.Level {
	if c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Validate checks that output format and log level hold known values.
func (c *Config) Validate() error {
	if c.OutputFormat != "json" && c.OutputFormat != "text" {
		return fmt.Errorf("OUTPUT_FORMAT must be \"json\" or \"text\", got %q", c.OutputFormat)
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("LOG_LEVEL is not a valid level: %w", err)
		}
	}
	if strings.TrimSpace(c.StagingSystem) == "" {
		return fmt.Errorf("STAGING_SYSTEM must not be empty")
	}
	return nil
}
