package ecs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime knobs of a World.
type Config struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level" env:"ECS_LOG_LEVEL"`

	// TraceBorrows logs every borrow acquisition and release at debug level.
	TraceBorrows bool `yaml:"trace_borrows" env:"ECS_TRACE_BORROWS"`

	// Tracing opens an OpenTelemetry span per system run, using the global
	// tracer provider.
	Tracing bool `yaml:"tracing" env:"ECS_TRACING"`
}

// DefaultConfig returns the configuration used by NewWorld.
func DefaultConfig() Config {
	return Config{LogLevel: "info"}
}

// LoadConfig reads the configuration in three layers: defaults, then the
// YAML file at path if path is not empty, then ECS_* environment variables.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("ecs: read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("ecs: parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("ecs: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns LogLevel as a slog level. An empty LogLevel means info.
func (c Config) Level() (slog.Level, error) {
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, errors.Join(fmt.Errorf("ecs: invalid log level %q", c.LogLevel), err)
	}
	return level, nil
}
