// Package config loads esgcopilot configuration from .esgcopilot/config.yaml
// with environment variable overrides for credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all esgcopilot configuration.
type Config struct {
	// Gemini configures the generative service connection.
	Gemini GeminiConfig `yaml:"gemini"`

	// Logging configures the category file logger.
	Logging LoggingConfig `yaml:"logging"`
}

// GeminiConfig configures the external AI service.
// An empty APIKey puts the copilot into unconfigured mode: every AI
// operation short-circuits to its documented fallback without a network
// attempt.
type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

// LoggingConfig controls the category file logger.
// When DebugMode is false no log files are written at all.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories"`
}

const defaultModel = "gemini-3-flash-preview"

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Gemini: GeminiConfig{
			Model:   defaultModel,
			Timeout: "2m",
		},
	}
}

// DefaultPath returns the default config file location under the workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, ".esgcopilot", "config.yaml")
}

// Load reads the config file at path, fills in defaults, and applies
// environment overrides. A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = defaultModel
	}
	if cfg.Gemini.Timeout == "" {
		cfg.Gemini.Timeout = "2m"
	}
	return cfg, nil
}

// applyEnvOverrides lets the environment win over the file for credentials.
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}
	if model := os.Getenv("ESGCOPILOT_MODEL"); model != "" {
		cfg.Gemini.Model = model
	}
}

// RequestTimeout parses the configured timeout, defaulting to two minutes.
func (g GeminiConfig) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(g.Timeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

// Configured reports whether a credential is present.
func (g GeminiConfig) Configured() bool {
	return g.APIKey != ""
}
