// Package cli provides the command-line interface for Parley.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/asteroid-belt/parley/internal/config"
	"github.com/asteroid-belt/parley/internal/log"
	"github.com/asteroid-belt/parley/internal/telemetry"
	"github.com/asteroid-belt/parley/pkg/version"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var telemetryClient = telemetry.Noop()

var commandStartTime time.Time

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Chat bot display names and agent smoke tests",
	Long: `Chat bot display names and agent smoke tests

Manage the display names chat users choose for themselves
("/myname <name>" or "call me <name>") and run the end-to-end
scenario suite against the agent entry point.

Configuration:
  PARLEY_STATE_DIR     state directory (default ~/.parley)
  PARLEY_AGENT_CMD     agent entry point (default parley-agent)
  PARLEY_E2E_DIR       isolated state for e2e runs (default ~/.parley-e2e)
  PARLEY_E2E_TIMEOUT   per-scenario timeout, e.g. 2m (default none)
  PARLEY_DEBUG         enable debug logging

Telemetry:
  Anonymous and opt-out. Sender ids and names are never sent.
  Opt-out with:
  	PARLEY_TELEMETRY_TRACKING_ENABLED=false`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commandStartTime = time.Now()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cmd.Name() != "parley" {
			durationMs := time.Since(commandStartTime).Milliseconds()
			telemetryClient.TrackCLICommandExecuted(cmd.CommandPath(), cmd.Flags().NFlag() > 0, durationMs)
		}
	},
}

func init() {
	rootCmd.AddCommand(e2eCmd)
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context, tc telemetry.Client) error {
	if tc == nil {
		tc = telemetry.New()
	}
	telemetryClient = tc

	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
}

// loadConfig loads configuration and applies the debug setting.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log.SetDebug(cfg.Debug)
	if cfg.Debug {
		if err := log.Init(config.GetPaths(cfg).Logs); err != nil {
			log.Errorf("init log file: %v", err)
		}
	}
	return cfg, nil
}

// trackCLIError wraps an error with telemetry tracking.
// Call this before returning errors from CLI commands.
func trackCLIError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	telemetryClient.TrackCLIError(cmdName, classifyError(err))
	return err
}

// classifyError determines the error type for telemetry.
func classifyError(err error) string {
	errStr := err.Error()
	switch {
	case containsAny(errStr, "config", "configuration"):
		return "config_error"
	case containsAny(errStr, "scenario"):
		return "scenario_failure"
	case containsAny(errStr, "agent", "exec", "spawn"):
		return "agent_error"
	case containsAny(errStr, "permission", "access denied"):
		return "permission_error"
	case containsAny(errStr, "not found", "does not exist"):
		return "not_found_error"
	case containsAny(errStr, "invalid", "parse", "format", "unknown platform"):
		return "validation_error"
	default:
		return "unknown_error"
	}
}

// containsAny checks if s contains any of the substrings (case-insensitive).
func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Info())
	},
}

// getenv is swapped in tests.
var getenv = os.Getenv
