package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// File names inside a state directory.
const (
	DisplayNamesFile = "group-display-names.json"
	ConfigFile       = "config.yaml"
	CredentialsFile  = "credentials.json"
	CronDir          = "cron"
)

// Paths contains commonly used file paths.
type Paths struct {
	DisplayNames string // Per-user display name preferences
	Config       string // Config file
	Credentials  string // Platform credentials used by the agent
	Logs         string // Log directory
	E2EState     string // Isolated state directory for scenario runs
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		DisplayNames: filepath.Join(cfg.StateDir, DisplayNamesFile),
		Config:       filepath.Join(cfg.StateDir, ConfigFile),
		Credentials:  filepath.Join(cfg.StateDir, CredentialsFile),
		Logs:         filepath.Join(cfg.StateDir, "logs"),
		E2EState:     cfg.E2E.StateDir,
	}
}

// DefaultStateDir returns the default state directory (~/.parley).
func DefaultStateDir() string {
	if xdg.Home == "" {
		return ".parley"
	}
	return filepath.Join(xdg.Home, ".parley")
}

// DefaultE2EStateDir returns the isolated state directory used by
// end-to-end runs (~/.parley-e2e).
func DefaultE2EStateDir() string {
	if xdg.Home == "" {
		return ".parley-e2e"
	}
	return filepath.Join(xdg.Home, ".parley-e2e")
}
