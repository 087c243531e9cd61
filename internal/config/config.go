// Package config handles application configuration management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvStateDir   = "PARLEY_STATE_DIR"
	EnvAgentCmd   = "PARLEY_AGENT_CMD"
	EnvE2EDir     = "PARLEY_E2E_DIR"
	EnvE2ETimeout = "PARLEY_E2E_TIMEOUT"
	EnvDebug      = "PARLEY_DEBUG"
)

// Config holds all application configuration.
type Config struct {
	// State directory shared with the bot (~/.parley)
	StateDir string

	// Agent entry point settings
	Agent AgentConfig

	// End-to-end scenario runner settings
	E2E E2EConfig

	// Debug enables component debug logging.
	Debug bool
}

// AgentConfig describes how to launch the agent process.
type AgentConfig struct {
	// Command and leading arguments; "--test <message>" is appended per scenario.
	Command []string `yaml:"command"`
}

// E2EConfig holds scenario runner settings.
type E2EConfig struct {
	// StateDir is the isolated state directory handed to the agent (~/.parley-e2e)
	StateDir string `yaml:"state_dir"`
	// Timeout per scenario. Zero waits forever.
	Timeout time.Duration `yaml:"timeout"`
}

// fileConfig mirrors the optional config.yaml in the state directory.
type fileConfig struct {
	Agent AgentConfig `yaml:"agent"`
	E2E   E2EConfig   `yaml:"e2e"`
	Debug bool        `yaml:"debug"`
}

// Load reads configuration from config.yaml and environment variables.
// Environment variables win over the file, the file wins over defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if dir := os.Getenv(EnvStateDir); dir != "" {
		cfg.StateDir = dir
	}

	if err := loadFile(cfg, GetPaths(cfg).Config); err != nil {
		return nil, err
	}

	// Split on whitespace; paths with spaces go in config.yaml as a list.
	if cmd := strings.Fields(os.Getenv(EnvAgentCmd)); len(cmd) > 0 {
		cfg.Agent.Command = cmd
	}

	if dir := os.Getenv(EnvE2EDir); dir != "" {
		cfg.E2E.StateDir = dir
	}

	if raw := os.Getenv(EnvE2ETimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", EnvE2ETimeout, err)
		}
		cfg.E2E.Timeout = d
	}

	if v := os.Getenv(EnvDebug); v != "" && v != "0" && v != "false" {
		cfg.Debug = true
	}

	return cfg, nil
}

// loadFile overlays config.yaml onto cfg. A missing file is not an error.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if len(fc.Agent.Command) > 0 {
		cfg.Agent.Command = fc.Agent.Command
	}
	if fc.E2E.StateDir != "" {
		cfg.E2E.StateDir = fc.E2E.StateDir
	}
	if fc.E2E.Timeout > 0 {
		cfg.E2E.Timeout = fc.E2E.Timeout
	}
	if fc.Debug {
		cfg.Debug = true
	}
	return nil
}

// EnsureStateDir creates the state directory if it doesn't exist.
func EnsureStateDir(cfg *Config) error {
	return os.MkdirAll(filepath.Clean(cfg.StateDir), 0755)
}
