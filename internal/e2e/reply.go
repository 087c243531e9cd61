package e2e

import (
	"regexp"
	"strings"
)

// Markers the agent prints around its reply in test mode.
const (
	ReplyStartMarker = "E2E_REPLY_START"
	ReplyEndMarker   = "E2E_REPLY_END"
)

// replyPattern matches a reply framed by marker lines. Marker text inside
// other lines, or followed by more characters, does not count.
var replyPattern = regexp.MustCompile(`(?s)(?:^|\n)` + ReplyStartMarker + `[ \t]*\r?\n(?:(.*?)\r?\n)?` + ReplyEndMarker + `[ \t]*(?:\r?\n|$)`)

// NoOutput stands in for a reply when the agent printed nothing.
const NoOutput = "(no output)"

// ExtractReply returns the lines between the first reply marker pair, or the
// whole trimmed output when no such pair exists.
func ExtractReply(stdout string) string {
	if m := replyPattern.FindStringSubmatch(stdout); m != nil {
		return strings.TrimSpace(m[1])
	}
	if out := strings.TrimSpace(stdout); out != "" {
		return out
	}
	return NoOutput
}

// TailLines returns the last n lines of s, ignoring trailing whitespace.
func TailLines(s string, n int) string {
	s = strings.TrimRight(s, " \t\r\n")
	if s == "" || n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
