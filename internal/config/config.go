package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultSettingsPath is the markdownlint rule-settings file used when
// --settingspath is not given.
const DefaultSettingsPath = "./.markdownlint.json"

// DefaultOutput is the report written by the lint task.
const DefaultOutput = "markdownissues.txt"

// DefaultTestPattern matches PowerShell test scripts below a search root.
const DefaultTestPattern = "**/*.Tests.ps1"

// Config represents dsckit configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// SettingsPath is the lint rule-settings file used when no flag overrides it
	SettingsPath string `yaml:"settings_path"`

	// Output is the report file written by test-mdsyntax
	Output string `yaml:"output"`

	// TestPattern is the glob (relative to the search root) used by describe-tests
	TestPattern string `yaml:"test_pattern"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		SettingsPath: DefaultSettingsPath,
		Output:       DefaultOutput,
		TestPattern:  DefaultTestPattern,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.SettingsPath != "" {
		cfg.SettingsPath = fileCfg.SettingsPath
	}
	if fileCfg.Output != "" {
		cfg.Output = fileCfg.Output
	}
	if fileCfg.TestPattern != "" {
		cfg.TestPattern = fileCfg.TestPattern
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .dsckit/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".dsckit", "config.yaml"))
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, output *string) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if output != nil {
		c.Output = *output
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Output == "" {
		return fmt.Errorf("output cannot be empty")
	}

	if c.SettingsPath == "" {
		return fmt.Errorf("settings_path cannot be empty")
	}

	if c.TestPattern == "" {
		return fmt.Errorf("test_pattern cannot be empty")
	}

	return nil
}
