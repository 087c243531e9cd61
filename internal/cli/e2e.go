package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asteroid-belt/parley/internal/e2e"
	"github.com/spf13/cobra"
)

// ErrScenariosFailed is returned when at least one scenario failed.
var ErrScenariosFailed = errors.New("one or more scenarios failed")

var (
	e2eAgentFlag   string
	e2eTimeoutFlag time.Duration
)

var e2eCmd = &cobra.Command{
	Use:   "e2e [message]",
	Short: "Run end-to-end scenarios against the agent",
	Long: `Run end-to-end scenarios against the agent entry point.

Each scenario starts the agent as "<agent> --test <message>" with its state
directory pointed at an isolated copy (config and credentials are copied in
from the real state directory). The reply is read from between the
E2E_REPLY_START and E2E_REPLY_END lines of its output.

With a message argument, or TEST_MESSAGE set, a single scenario runs.
Otherwise the built-in suite runs. Exits 1 if any agent exited non-zero.

--agent and PARLEY_AGENT_CMD are split on whitespace. For an agent path
that contains spaces, set agent.command as a list in config.yaml:

  agent:
    command: ["/opt/My Agent/bin/agent", "--profile", "e2e"]`,
	Args: cobra.MaximumNArgs(1),
	RunE: runE2E,
}

func init() {
	e2eCmd.Flags().StringVar(&e2eAgentFlag, "agent", "", "agent command, split on whitespace (overrides PARLEY_AGENT_CMD)")
	e2eCmd.Flags().DurationVar(&e2eTimeoutFlag, "timeout", 0, "per-scenario timeout (0 waits forever)")
}

func runE2E(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return trackCLIError("e2e", fmt.Errorf("load config: %w", err))
	}

	opts := e2e.OptionsFromConfig(cfg)
	if fields := strings.Fields(e2eAgentFlag); len(fields) > 0 {
		opts.AgentCommand = fields
	}
	if e2eTimeoutFlag > 0 {
		opts.Timeout = e2eTimeoutFlag
	}

	runner := e2e.NewRunner(opts)
	if err := runner.EnsureIsolatedEnvironment(); err != nil {
		return trackCLIError("e2e", err)
	}

	scenarios := e2e.ResolveScenarios(args, getenv)
	start := time.Now()
	sum := runner.Run(cmd.Context(), scenarios, cmd.OutOrStdout())

	single := len(scenarios) == 1 && scenarios[0].Name == e2e.SingleScenarioName
	telemetryClient.TrackE2ERunCompleted(sum.Run, sum.Failed, single, time.Since(start).Milliseconds())

	if !sum.OK() {
		return trackCLIError("e2e", ErrScenariosFailed)
	}
	return nil
}
