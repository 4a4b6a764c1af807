// Package config loads benchmark run configuration from a YAML file.
// Only non-secret settings live here; endpoint passwords come from the
// environment or the OS keychain.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"snbench/cli/internal/backend"
)

// Config holds the settings for one benchmark run.
type Config struct {
	Backend backend.Config `yaml:"backend"`
	// Templates is the directory of query templates for the backend's
	// query language.
	Templates string `yaml:"templates"`
	Workload  string `yaml:"workload"`
	Workers   int    `yaml:"workers"`
	// MaxOperations truncates the workload when positive.
	MaxOperations int    `yaml:"max_operations"`
	LogLevel      string `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Backend:  backend.Config{Kind: backend.KindSPARQL},
		Workers:  4,
		LogLevel: "info",
	}
}

// Load reads configuration from path; a missing file returns defaults.
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}

	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse %s: %w", path, err)
	}

	return c, nil
}

// Validate checks the settings a run cannot start without.
func (c Config) Validate() error {
	if c.Backend.Kind == "" {
		return errors.New("backend kind is required")
	}
	if c.Backend.Endpoint == "" {
		return errors.New("backend endpoint is required")
	}
	if c.Templates == "" {
		return errors.New("template directory is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}
