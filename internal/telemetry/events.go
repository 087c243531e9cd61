package telemetry

import (
	"runtime"

	"github.com/asteroid-belt/parley/pkg/version"
)

// Event names
const (
	EventCLICommandExecuted = "cli_command_executed"
	EventCLIErrorOccurred   = "cli_error_occurred"
	EventDisplayNameSet     = "display_name_set"
	EventDisplayNameCleared = "display_name_cleared"
	EventE2ERunCompleted    = "e2e_run_completed"
)

// baseProperties returns common properties for all events.
// Sender ids and names are never included.
func baseProperties() map[string]interface{} {
	return map[string]interface{}{
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"version":    version.Short(),
		"prerelease": version.IsPrerelease(),
		"dev_build":  version.IsDevBuild(),
	}
}

// TrackCLICommandExecuted tracks a finished CLI command.
func (c *posthogClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {
	props := baseProperties()
	props["command_name"] = commandName
	props["has_flags"] = hasFlags
	props["duration_ms"] = durationMs
	c.Track(EventCLICommandExecuted, props)
}

// TrackCLIError tracks a classified CLI error.
func (c *posthogClient) TrackCLIError(commandName, errorType string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["error_type"] = errorType
	c.Track(EventCLIErrorOccurred, props)
}

// TrackDisplayNameSet tracks a stored display name.
func (c *posthogClient) TrackDisplayNameSet(platform string, viaCommand bool) {
	props := baseProperties()
	props["platform"] = platform
	props["via_command"] = viaCommand
	c.Track(EventDisplayNameSet, props)
}

// TrackDisplayNameCleared tracks a removed display name.
func (c *posthogClient) TrackDisplayNameCleared(platform string) {
	props := baseProperties()
	props["platform"] = platform
	c.Track(EventDisplayNameCleared, props)
}

// TrackE2ERunCompleted tracks an end-to-end scenario run.
func (c *posthogClient) TrackE2ERunCompleted(scenarioCount, failedCount int, single bool, durationMs int64) {
	props := baseProperties()
	props["scenario_count"] = scenarioCount
	props["failed_count"] = failedCount
	props["single"] = single
	props["duration_ms"] = durationMs
	c.Track(EventE2ERunCompleted, props)
}

func (c *noopClient) TrackCLICommandExecuted(string, bool, int64) {}
func (c *noopClient) TrackCLIError(string, string)                 {}
func (c *noopClient) TrackDisplayNameSet(string, bool)             {}
func (c *noopClient) TrackDisplayNameCleared(string)               {}
func (c *noopClient) TrackE2ERunCompleted(int, int, bool, int64)   {}
