package config

import (
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ehr/tnmstage/internal/domain/staging"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("OUTPUT_FORMAT")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("STAGING_SYSTEM")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputFormat != "json" {
		t.Errorf("expected default output format json, got %s", cfg.OutputFormat)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.StagingSystem != staging.Edition {
		t.Errorf("expected default staging system %q, got %q", staging.Edition, cfg.StagingSystem)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("OUTPUT_FORMAT", "TEXT")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputFormat != "text" {
		t.Errorf("expected output format text, got %s", cfg.OutputFormat)
	}
	if cfg.Level() != zerolog.DebugLevel {
		t.Errorf("expected debug level, got %s", cfg.Level())
	}
	if !cfg.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}
}

func TestLoad_RejectsUnknownOutputFormat(t *testing.T) {
	t.Setenv("OUTPUT_FORMAT", "xml")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown OUTPUT_FORMAT")
	}
}

func TestConfig_Validate(t *testing.T) {
	c := &Config{OutputFormat: "json", LogLevel: "loud", StagingSystem: "x"}
	if err := c.Validate(); err == nil {
		t.Error("expected error for invalid log level")
	}

	c = &Config{OutputFormat: "json", LogLevel: "warn", StagingSystem: " "}
	if err := c.Validate(); err == nil {
		t.Error("expected error for empty staging system")
	}

	c = &Config{OutputFormat: "text", StagingSystem: "x"}
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if c.Level() != zerolog.InfoLevel {
		t.Errorf("expected info level when unset, got %s", c.Level())
	}
}
