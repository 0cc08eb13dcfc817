// Package config loads the optional configuration trace.Setup accepts
// beyond the plain TRACE environment variable: a small YAML file,
// overridden by environment variables, following the same
// file-then-env-override pattern the rest of this corpus uses.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"spantrace/internal/diag"
)

// Config is spantrace's own setup configuration.
type Config struct {
	// Sink has the same semantics as the TRACE env var: "stdout",
	// "stderr", or a file path. Empty means no collector is installed.
	Sink string `yaml:"sink"`

	// FlushInterval overrides the backend's ticker period. Zero means
	// the backend's own default (500ms).
	FlushInterval time.Duration `yaml:"flush_interval"`

	// MockMode enables mock mode process-wide (pid 2, tid 3) and gives
	// the backend the deterministic test clock.
	MockMode bool `yaml:"mock_mode"`
}

// rawConfig mirrors Config but with FlushInterval as a duration string,
// since yaml.v2 has no built-in support for unmarshaling into
// time.Duration directly.
type rawConfig struct {
	Sink          string `yaml:"sink"`
	FlushInterval string `yaml:"flush_interval"`
	MockMode      bool   `yaml:"mock_mode"`
}

// UnmarshalYAML implements yaml.Unmarshaler so "10ms"-style duration
// strings in the config file parse the same way SPANTRACE_FLUSH_INTERVAL
// does from the environment.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw rawConfig
	if err := unmarshal(&raw); err != nil {
		return err
	}
	c.Sink = raw.Sink
	c.MockMode = raw.MockMode
	if raw.FlushInterval != "" {
		d, err := time.ParseDuration(raw.FlushInterval)
		if err != nil {
			return fmt.Errorf("flush_interval: %w", err)
		}
		c.FlushInterval = d
	}
	return nil
}

// Load reads path (if non-empty and present) and overlays environment
// variables on top. A missing path is not an error — callers normally
// derive path from SPANTRACE_CONFIG, which is commonly unset.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, diag.New(diag.SeverityError, diag.CodeConfigInvalid, "config", "parse config file").WithCause(err)
			}
		case !os.IsNotExist(err):
			return cfg, diag.New(diag.SeverityError, diag.CodeConfigInvalid, "config", "read config file").WithCause(err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRACE"); v != "" {
		cfg.Sink = v
	}
	if v := os.Getenv("SPANTRACE_FLUSH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.FlushInterval = d
		}
	}
	if v := os.Getenv("SPANTRACE_MOCK_MODE"); v == "1" || v == "true" {
		cfg.MockMode = true
	}
}

// Validate reports a diag.Event (satisfying error) describing the first
// problem found, or nil.
func (c Config) Validate() error {
	if c.FlushInterval < 0 {
		return diag.New(diag.SeverityError, diag.CodeConfigInvalid, "config", fmt.Sprintf("flush_interval must not be negative, got %s", c.FlushInterval))
	}
	return nil
}
