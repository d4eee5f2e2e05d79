// Package config loads the condex.yml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the project configuration file.
const ConfigFile = "condex.yml"

// Config represents the condex.yml configuration.
type Config struct {
	// Directories scanned for template files.
	SourceDirs []string `yaml:"sourceDirs,omitempty" validate:"required,min=1,dive,required"`

	// Template file extensions to compile.
	Extensions []string `yaml:"extensions,omitempty" validate:"required,min=1,dive,startswith=."`

	// Suffix replacing the source extension on output files.
	OutputSuffix string `yaml:"outputSuffix,omitempty" validate:"required,startswith=."`

	// Compile cache configuration.
	Cache *CacheConfig `yaml:"cache,omitempty"`

	// Watch mode configuration.
	Watch *WatchConfig `yaml:"watch,omitempty"`
}

// CacheConfig controls the compile cache.
type CacheConfig struct {
	// Whether the cache is enabled.
	Enabled bool `yaml:"enabled"`

	// Cache directory; defaults to $HOME/.cache/condex.
	Dir string `yaml:"dir,omitempty"`
}

// WatchConfig controls watch mode and its live-reload server.
type WatchConfig struct {
	// Live-reload server port.
	Port int `yaml:"port,omitempty" validate:"omitempty,min=1,max=65535"`

	// Live-reload server host.
	Host string `yaml:"host,omitempty"`

	// Debounce window for file events, in milliseconds.
	DebounceMS int `yaml:"debounceMs,omitempty" validate:"omitempty,min=10,max=5000"`
}

// Load loads configuration from condex.yml in projectPath, falling back to
// defaults when no file exists.
func Load(projectPath string) (*Config, error) {
	configPath := filepath.Join(projectPath, ConfigFile)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFile, err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Save writes configuration to condex.yml in projectPath.
func Save(config *Config, projectPath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(projectPath, ConfigFile), data, 0644)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SourceDirs:   []string{".", "app", "app/routes", "app/components"},
		Extensions:   []string{".vex"},
		OutputSuffix: ".out.vex",
		Cache: &CacheConfig{
			Enabled: true,
		},
		Watch: &WatchConfig{
			Port:       35729,
			Host:       "localhost",
			DebounceMS: 100,
		},
	}
}

// applyDefaults fills in defaults for missing configuration values.
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if len(config.SourceDirs) == 0 {
		config.SourceDirs = defaults.SourceDirs
	}
	if len(config.Extensions) == 0 {
		config.Extensions = defaults.Extensions
	}
	if config.OutputSuffix == "" {
		config.OutputSuffix = defaults.OutputSuffix
	}

	if config.Cache == nil {
		config.Cache = defaults.Cache
	}

	if config.Watch == nil {
		config.Watch = defaults.Watch
	} else {
		if config.Watch.Port == 0 {
			config.Watch.Port = defaults.Watch.Port
		}
		if config.Watch.Host == "" {
			config.Watch.Host = defaults.Watch.Host
		}
		if config.Watch.DebounceMS == 0 {
			config.Watch.DebounceMS = defaults.Watch.DebounceMS
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	return nil
}
