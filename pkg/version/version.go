// Package version provides build version information.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// These are set via ldflags at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var (
	parsedVersion  *semver.Version
	parseAttempted bool
)

func resetParsedVersion() {
	parsedVersion = nil
	parseAttempted = false
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Info returns a one-line build description.
func Info() string {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("parley %s (%s) built on %s with %s %s/%s",
		Version, commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Parsed returns the semantic version, or nil for builds like "dev".
func Parsed() *semver.Version {
	if parseAttempted {
		return parsedVersion
	}
	parseAttempted = true

	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil
	}
	parsedVersion = v
	return parsedVersion
}

// IsPrerelease reports a pre-release build such as v1.2.0-rc.1.
func IsPrerelease() bool {
	v := Parsed()
	return v != nil && v.Prerelease() != ""
}

// IsDevBuild reports a build without a valid semver.
func IsDevBuild() bool {
	return Parsed() == nil
}
