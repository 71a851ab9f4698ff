// Package config holds all deskNERD configuration, loaded from a YAML
// file with environment-variable overrides for secrets and paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all deskNERD configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Admission thresholds and resource budget
	Admission AdmissionConfig `yaml:"admission"`

	// Execution settings for the command driver
	Execution ExecutionConfig `yaml:"execution"`

	// Browser driver settings
	Browser BrowserConfig `yaml:"browser"`

	// Audit sink settings
	Audit AuditConfig `yaml:"audit"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// Default returns production defaults.
func Default() Config {
	return Config{
		Name:      "desknerd",
		Version:   "0.3.0",
		Admission: DefaultAdmissionConfig(),
		Execution: DefaultExecutionConfig(),
		Browser:   DefaultBrowserConfig(),
		Audit:     DefaultAuditConfig(),
	}
}

// DefaultPath returns the config file location: project-local
// .desknerd/config.yaml when present, otherwise under the home dir.
func DefaultPath() (string, error) {
	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, ".desknerd", "config.yaml")
		if _, err := os.Stat(local); err == nil {
			return local, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".desknerd", "config.yaml"), nil
}

// Load reads configuration from path. A missing file yields defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		applyEnvOverrides(&cfg)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if err := c.Admission.Validate(); err != nil {
		return err
	}
	if c.Execution.DefaultTimeoutMs <= 0 {
		return fmt.Errorf("execution.default_timeout_ms must be positive")
	}
	return nil
}

// applyEnvOverrides maps DESKNERD_* variables onto the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DESKNERD_DEBUG"); v == "1" || v == "true" {
		cfg.Logging.Debug = true
	}
	if v := os.Getenv("DESKNERD_AUDIT_DB"); v != "" {
		cfg.Audit.DatabasePath = v
	}
	if v := os.Getenv("DESKNERD_BROWSER_BIN"); v != "" {
		cfg.Browser.Bin = v
	}
}
