// Package testutil provides testing utilities.
package testutil

import (
	"os"
	"testing"
)

// HelperEnv marks a process started by HelperAgentCommand.
const HelperEnv = "GO_WANT_HELPER_PROCESS"

// HelperAgentCommand returns a command that re-runs the current test binary
// as a fake agent. The named test must call IsHelperAgent first and exit.
// It sets HelperEnv for the duration of t so children inherit it.
func HelperAgentCommand(t *testing.T, testName string) []string {
	t.Helper()
	t.Setenv(HelperEnv, "1")
	return []string{os.Args[0], "-test.run=^" + testName + "$", "--"}
}

// IsHelperAgent reports whether this process was started as a fake agent.
func IsHelperAgent() bool {
	return os.Getenv(HelperEnv) == "1"
}

// AgentMessage returns the message argument the fake agent was started with.
func AgentMessage() string {
	if len(os.Args) == 0 {
		return ""
	}
	return os.Args[len(os.Args)-1]
}
