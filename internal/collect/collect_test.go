// collect_test.go provides shared test fixtures for the collectors:
// a fake command runner returning canned results and a discard logger.
package collect

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/doughall/hostaudit/internal/runner"
)

// nopLogger returns a logger that discards all output, suitable for tests.
func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRunner satisfies CommandRunner with a canned result and records
// the spec it was invoked with.
type fakeRunner struct {
	result   *runner.Result
	lastSpec runner.Spec
}

func (f *fakeRunner) Run(_ context.Context, spec runner.Spec, _ time.Duration) *runner.Result {
	f.lastSpec = spec
	return f.result
}

func okResult(output string) *runner.Result {
	return &runner.Result{OK: true, Output: output}
}

func failResult(reason runner.FailureReason) *runner.Result {
	return &runner.Result{OK: false, Reason: reason, ExitCode: -1}
}
