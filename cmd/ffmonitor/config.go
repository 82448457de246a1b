package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration for the watch command. Flags
// take precedence over config file values.
type Config struct {
	// Address is the monitor endpoint, host:port.
	Address string `yaml:"address"`

	// Format is the output format: jsonl or pretty.
	Format string `yaml:"format"`

	// DialTimeout bounds the initial connect.
	DialTimeout time.Duration `yaml:"dial_timeout"`

	// PollInterval is how often buffered updates are drained.
	PollInterval time.Duration `yaml:"poll_interval"`

	// IncludeTypes / ExcludeTypes filter events by type name.
	IncludeTypes []string `yaml:"include_types"`
	ExcludeTypes []string `yaml:"exclude_types"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Format:       "jsonl",
		DialTimeout:  10 * time.Second,
		PollInterval: 500 * time.Millisecond,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Format == "" {
		cfg.Format = "jsonl"
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 10 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	return cfg, nil
}
