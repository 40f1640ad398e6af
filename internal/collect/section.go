// Package collect implements the audit checks. Each collector runs one
// host inspection (an external command or a metadata probe) and returns
// one titled report section. A failed check degrades to a placeholder
// body; it never aborts the run and never surfaces an error to the
// aggregator.
package collect

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doughall/hostaudit/internal/runner"
)

// Section is one titled block of the final report.
type Section struct {
	Title string
	Body  string
}

// Collector produces one report section from one host check.
type Collector interface {
	// Name is the section title as it appears in the report.
	Name() string

	// Collect runs the check. It always returns a usable Section;
	// failures are reported in the body text, not as errors.
	Collect(ctx context.Context) Section
}

// CommandRunner is the execution dependency of command-backed
// collectors. Satisfied by *runner.Runner; faked in tests.
type CommandRunner interface {
	Run(ctx context.Context, spec runner.Spec, timeout time.Duration) *runner.Result
}

// unavailable renders the placeholder body for a check whose command
// could not produce output.
func unavailable(reason runner.FailureReason) string {
	return fmt.Sprintf("Check could not run (%s).", reason)
}

// firstLines returns at most n leading lines of text, preserving order.
func firstLines(text string, n int) string {
	lines := splitLines(text)
	if len(lines) <= n {
		return text
	}
	return strings.Join(lines[:n], "\n")
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}
