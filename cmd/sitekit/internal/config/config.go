package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file
const FileName = "sitekit.yaml"

// Config represents the sitekit.yaml configuration
type Config struct {
	// Development server configuration
	Dev *DevConfig `yaml:"dev,omitempty"`

	// Build configuration
	Build *BuildConfig `yaml:"build,omitempty"`

	// File watching configuration for the dev server
	Watch *WatchConfig `yaml:"watch,omitempty"`
}

// DevConfig contains development server configuration
type DevConfig struct {
	// Server host
	Host string `yaml:"host,omitempty"`

	// Server port
	Port int `yaml:"port,omitempty"`
}

// BuildConfig describes the wasm build
type BuildConfig struct {
	// Package compiled for js/wasm
	Entry string `yaml:"entry,omitempty"`

	// Directory served to browsers
	PublicDir string `yaml:"public,omitempty"`

	// Name of the wasm binary inside PublicDir
	Wasm string `yaml:"wasm,omitempty"`

	// Explicit path to wasm_exec.js; resolved from GOROOT when empty
	WasmExec string `yaml:"wasm_exec,omitempty"`

	// Extra build tags
	Tags []string `yaml:"tags,omitempty"`

	// Linker flags, e.g. "-s -w"
	LDFlags string `yaml:"ldflags,omitempty"`

	// Directory of cached builds; "off" disables caching
	Cache string `yaml:"cache,omitempty"`
}

// WatchConfig controls which changes trigger rebuilds
type WatchConfig struct {
	Dirs       []string      `yaml:"dirs,omitempty"`
	Extensions []string      `yaml:"extensions,omitempty"`
	Debounce   time.Duration `yaml:"debounce,omitempty"`
}

// Load loads configuration from sitekit.yaml in projectPath. A missing file
// yields the defaults.
func Load(projectPath string) (*Config, error) {
	configPath := filepath.Join(projectPath, FileName)

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", configPath, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	// Apply defaults for missing values
	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return &config, nil
}

// Save saves configuration to sitekit.yaml
func Save(config *Config, projectPath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(projectPath, FileName), data, 0644)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Dev: &DevConfig{
			Host: "localhost",
			Port: 8080,
		},
		Build: &BuildConfig{
			Entry:     "./app/client",
			PublicDir: "public",
			Wasm:      "app.wasm",
			LDFlags:   "-s -w",
			Cache:     ".sitekit/cache",
		},
		Watch: &WatchConfig{
			Dirs:       []string{"."},
			Extensions: []string{".go", ".html", ".css", ".js"},
			Debounce:   100 * time.Millisecond,
		},
	}
}

// applyDefaults applies default values to missing configuration
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Dev == nil {
		config.Dev = defaults.Dev
	} else {
		if config.Dev.Host == "" {
			config.Dev.Host = defaults.Dev.Host
		}
		if config.Dev.Port == 0 {
			config.Dev.Port = defaults.Dev.Port
		}
	}

	if config.Build == nil {
		config.Build = defaults.Build
	} else {
		if config.Build.Entry == "" {
			config.Build.Entry = defaults.Build.Entry
		}
		if config.Build.PublicDir == "" {
			config.Build.PublicDir = defaults.Build.PublicDir
		}
		if config.Build.Wasm == "" {
			config.Build.Wasm = defaults.Build.Wasm
		}
		if config.Build.Cache == "" {
			config.Build.Cache = defaults.Build.Cache
		}
	}

	if config.Watch == nil {
		config.Watch = defaults.Watch
	} else {
		if len(config.Watch.Dirs) == 0 {
			config.Watch.Dirs = defaults.Watch.Dirs
		}
		if len(config.Watch.Extensions) == 0 {
			config.Watch.Extensions = defaults.Watch.Extensions
		}
		if config.Watch.Debounce <= 0 {
			config.Watch.Debounce = defaults.Watch.Debounce
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Dev.Port < 1 || c.Dev.Port > 65535 {
		return fmt.Errorf("dev.port %d out of range", c.Dev.Port)
	}
	if filepath.Ext(c.Build.Wasm) != ".wasm" {
		return fmt.Errorf("build.wasm %q must end in .wasm", c.Build.Wasm)
	}
	return nil
}

// WasmPath returns the path of the built binary
func (c *Config) WasmPath() string {
	return filepath.Join(c.Build.PublicDir, c.Build.Wasm)
}

// WasmExecPath returns where wasm_exec.js is copied
func (c *Config) WasmExecPath() string {
	return filepath.Join(c.Build.PublicDir, "wasm_exec.js")
}

// CacheEnabled reports whether builds go through the build cache
func (c *Config) CacheEnabled() bool {
	return c.Build.Cache != "" && c.Build.Cache != "off"
}

// Addr returns the dev server listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Dev.Host, c.Dev.Port)
}
