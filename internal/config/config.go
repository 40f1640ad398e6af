// Package config provides configuration management for hostaudit.
// It uses koanf v2 to load configuration from an optional YAML file.
//
// The tool must run with no arguments and no setup, so unlike a managed
// agent the config file is optional: when it does not exist, built-in
// defaults apply. A default file can be generated with -write-config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	goyaml "gopkg.in/yaml.v3"

	"github.com/doughall/hostaudit/internal/collect"
)

// DefaultConfigPath is the default location for the configuration file.
const DefaultConfigPath = "/etc/hostaudit/config.yaml"

// Config holds the audit configuration.
// Fields are tagged for both koanf (loading) and yaml (saving).
type Config struct {
	// ReportDir is the directory reports are written into.
	// Default: current directory.
	ReportDir string `koanf:"report_dir" yaml:"report_dir"`

	// LogLevel controls diagnostic verbosity on stderr.
	// Valid values: "debug", "info", "warn", "error". Default: "info".
	LogLevel string `koanf:"log_level" yaml:"log_level"`

	// CommandTimeoutSeconds bounds each external inspection command.
	// Default: 10 seconds.
	CommandTimeoutSeconds int `koanf:"command_timeout_seconds" yaml:"command_timeout_seconds"`

	// LoginHistoryLimit bounds the number of login records reported.
	// Default: 10.
	LoginHistoryLimit int `koanf:"login_history_limit" yaml:"login_history_limit"`

	// MetadataEndpoint is the instance metadata URL probed for cloud
	// detection. Default: the well-known link-local address.
	MetadataEndpoint string `koanf:"metadata_endpoint" yaml:"metadata_endpoint"`

	// MetadataTimeoutMS bounds the cloud metadata probe, in
	// milliseconds. Kept short: on non-cloud hosts the probe only ends
	// by timing out. Default: 2000.
	MetadataTimeoutMS int `koanf:"metadata_timeout_ms" yaml:"metadata_timeout_ms"`
}

// Validation errors returned by Load.
var (
	ErrInvalidCommandTimeout  = errors.New("command_timeout_seconds must be positive")
	ErrInvalidHistoryLimit    = errors.New("login_history_limit must be positive")
	ErrInvalidMetadataTimeout = errors.New("metadata_timeout_ms must be positive")
)

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the given YAML file path. A missing
// file is not an error: the defaults are returned so the tool works
// with zero setup. Any other read or parse failure is reported.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults sets default values for unset configuration fields.
func (c *Config) applyDefaults() {
	if c.ReportDir == "" {
		c.ReportDir = "."
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.CommandTimeoutSeconds == 0 {
		c.CommandTimeoutSeconds = 10
	}
	if c.LoginHistoryLimit == 0 {
		c.LoginHistoryLimit = 10
	}
	if c.MetadataEndpoint == "" {
		c.MetadataEndpoint = collect.DefaultMetadataEndpoint
	}
	if c.MetadataTimeoutMS == 0 {
		c.MetadataTimeoutMS = 2000
	}
}

// validate checks that configured values are usable.
func (c *Config) validate() error {
	if c.CommandTimeoutSeconds < 0 {
		return ErrInvalidCommandTimeout
	}
	if c.LoginHistoryLimit < 0 {
		return ErrInvalidHistoryLimit
	}
	if c.MetadataTimeoutMS < 0 {
		return ErrInvalidMetadataTimeout
	}
	return nil
}

// CommandTimeout returns the per-command timeout as a duration.
func (c *Config) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutSeconds) * time.Second
}

// MetadataTimeout returns the metadata probe timeout as a duration.
func (c *Config) MetadataTimeout() time.Duration {
	return time.Duration(c.MetadataTimeoutMS) * time.Millisecond
}

// Save writes the configuration to the given YAML file path. Used by
// -write-config to emit a starting point for customization.
func Save(path string, cfg *Config) error {
	data, err := goyaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to %s: %w", path, err)
	}

	return nil
}
