package e2e

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/asteroid-belt/parley/internal/config"
	"github.com/asteroid-belt/parley/internal/log"
)

func debugLog(format string, args ...interface{}) {
	log.DebugLog("e2e", format, args...)
}

// TestModeFlag puts the agent into single-message test mode.
const TestModeFlag = "--test"

// StatusSpawnFailed is reported when the agent could not be started.
const StatusSpawnFailed = -1

// copiedFiles are carried from the real state directory into the isolated one
// so the agent has working credentials.
var copiedFiles = []string{config.ConfigFile, config.CredentialsFile}

// Options configures a Runner.
type Options struct {
	// AgentCommand is the agent entry point plus leading arguments.
	AgentCommand []string
	// SourceStateDir is the real state directory credentials are copied from.
	SourceStateDir string
	// StateDir is the isolated state directory handed to the agent.
	StateDir string
	// StateDirEnv names the variable the agent resolves its state dir from.
	StateDirEnv string
	// Timeout per scenario. Zero waits forever.
	Timeout time.Duration
	// Env holds extra KEY=VALUE pairs for the agent.
	Env []string
	// Stdin is passed to the agent. Defaults to os.Stdin.
	Stdin io.Reader
}

// OptionsFromConfig builds runner options from application config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		AgentCommand:   cfg.Agent.Command,
		SourceStateDir: cfg.StateDir,
		StateDir:       config.GetPaths(cfg).E2EState,
		StateDirEnv:    config.EnvStateDir,
		Timeout:        cfg.E2E.Timeout,
	}
}

// Result is the outcome of one scenario.
type Result struct {
	Status int    // Agent exit code, 0 on success
	Reply  string // Text between the reply markers
	Stderr string // Trimmed standard error
	Err    error  // Set when the agent could not be run
}

// Failed reports whether the scenario counts as a failure.
func (r Result) Failed() bool {
	return r.Status != 0
}

// Runner drives the agent through scenarios.
type Runner struct {
	opts Options
}

// NewRunner creates a runner.
func NewRunner(opts Options) *Runner {
	if opts.StateDirEnv == "" {
		opts.StateDirEnv = config.EnvStateDir
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	return &Runner{opts: opts}
}

// EnsureIsolatedEnvironment creates the isolated state directory and copies
// config and credentials from the real state directory when present.
// It never deletes anything and is safe to call repeatedly.
func (r *Runner) EnsureIsolatedEnvironment() error {
	if r.opts.StateDir == "" {
		return errors.New("isolated state directory not configured")
	}
	if err := os.MkdirAll(filepath.Join(r.opts.StateDir, config.CronDir), 0755); err != nil {
		return fmt.Errorf("create isolated state directory: %w", err)
	}
	if r.opts.SourceStateDir == "" || sameDir(r.opts.SourceStateDir, r.opts.StateDir) {
		return nil
	}

	for _, name := range copiedFiles {
		src := filepath.Join(r.opts.SourceStateDir, name)
		dst := filepath.Join(r.opts.StateDir, name)
		copied, err := copyIfExists(src, dst)
		if err != nil {
			return fmt.Errorf("copy %s: %w", name, err)
		}
		if copied {
			debugLog("copied %s into %s", name, r.opts.StateDir)
		}
	}
	return nil
}

// RunScenario runs the agent with message and waits for it to exit.
func (r *Runner) RunScenario(ctx context.Context, message string) Result {
	if err := r.EnsureIsolatedEnvironment(); err != nil {
		return Result{Status: StatusSpawnFailed, Reply: NoOutput, Err: err}
	}
	if len(r.opts.AgentCommand) == 0 {
		return Result{Status: StatusSpawnFailed, Reply: NoOutput, Err: errors.New("agent command not configured")}
	}

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, r.opts.AgentCommand[1:]...), TestModeFlag, message)
	cmd := exec.CommandContext(ctx, r.opts.AgentCommand[0], args...)
	cmd.Env = append(os.Environ(), r.opts.Env...)
	cmd.Env = append(cmd.Env, r.opts.StateDirEnv+"="+r.opts.StateDir)
	cmd.Stdin = r.opts.Stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	debugLog("running %v", cmd.Args)
	start := time.Now()
	err := cmd.Run()
	debugLog("agent finished in %s: %v", time.Since(start).Round(time.Millisecond), err)

	res := Result{
		Reply:  ExtractReply(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.Status = 0
	case errors.As(err, &exitErr):
		res.Status = exitErr.ExitCode()
		if res.Status == 0 {
			res.Status = StatusSpawnFailed
		}
		if ctx.Err() != nil {
			res.Err = fmt.Errorf("agent stopped: %w", ctx.Err())
		}
	default:
		res.Status = StatusSpawnFailed
		res.Err = fmt.Errorf("start agent: %w", err)
	}
	return res
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// copyIfExists copies src to dst, keeping the source permissions. It reports
// false without error when src does not exist.
func copyIfExists(src, dst string) (bool, error) {
	in, err := os.Open(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return false, err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return false, err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return false, err
	}
	return true, out.Close()
}
