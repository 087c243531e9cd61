package e2e

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stderrTailLines is how much agent stderr the report shows per scenario.
const stderrTailLines = 5

// reportStyles are bound to the report writer so plain files and pipes get
// uncolored text.
type reportStyles struct {
	divider lipgloss.Style
	name    lipgloss.Style
	pass    lipgloss.Style
	fail    lipgloss.Style
	muted   lipgloss.Style
}

func newReportStyles(w io.Writer) reportStyles {
	r := lipgloss.NewRenderer(w)
	return reportStyles{
		divider: r.NewStyle().Foreground(lipgloss.Color("#6B6B6B")),
		name:    r.NewStyle().Bold(true),
		pass:    r.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
		fail:    r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#6B6B6B")),
	}
}

// Summary counts the scenarios of a run.
type Summary struct {
	Run    int
	Failed int
}

// OK reports whether every scenario passed.
func (s Summary) OK() bool {
	return s.Failed == 0
}

// ExitCode is the process exit code for the run.
func (s Summary) ExitCode() int {
	if s.OK() {
		return 0
	}
	return 1
}

// Run executes scenarios in order and writes a report to w. A failing
// scenario never stops the ones after it. A cancelled context skips the
// remaining scenarios and counts them as failed.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario, w io.Writer) Summary {
	var sum Summary
	st := newReportStyles(w)
	divider := st.divider.Render(strings.Repeat("─", 60))

	for i, sc := range scenarios {
		sum.Run++
		_, _ = fmt.Fprintln(w, divider)
		_, _ = fmt.Fprintf(w, "[%d/%d] %s\n", i+1, len(scenarios), st.name.Render(sc.Name))
		_, _ = fmt.Fprintf(w, "Input: %s\n", Preview(sc.Message))

		if err := ctx.Err(); err != nil {
			sum.Failed++
			_, _ = fmt.Fprintf(w, "%s skipped: %v\n", st.fail.Render("FAIL"), err)
			continue
		}

		res := r.RunScenario(ctx, sc.Message)
		writeResult(w, st, res)
		if res.Failed() {
			sum.Failed++
		}
	}

	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintf(w, "Done. %d scenario(s), %d failed.\n", sum.Run, sum.Failed)
	return sum
}

func writeResult(w io.Writer, st reportStyles, res Result) {
	reply := res.Reply
	if reply == "" {
		reply = "(empty)"
	}
	_, _ = fmt.Fprintf(w, "Reply: %s\n", reply)

	if tail := TailLines(res.Stderr, stderrTailLines); tail != "" {
		_, _ = fmt.Fprintln(w, st.muted.Render("Stderr (last lines):"))
		for _, line := range strings.Split(tail, "\n") {
			_, _ = fmt.Fprintf(w, "  %s\n", line)
		}
	}

	switch {
	case res.Err != nil:
		_, _ = fmt.Fprintf(w, "%s status %d: %v\n", st.fail.Render("FAIL"), res.Status, res.Err)
	case res.Failed():
		_, _ = fmt.Fprintf(w, "%s status %d\n", st.fail.Render("FAIL"), res.Status)
	default:
		_, _ = fmt.Fprintln(w, st.pass.Render("PASS"))
	}
}
