// runner.go implements external command execution with timeout and
// process group management. Commands are run in argv form with no shell
// interpretation layer, so arguments are passed verbatim and shell
// metacharacters carry no meaning. All children are killed on timeout
// using process groups, preventing orphan processes from accumulating.
package runner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// Spec is the argv form of an external command: the program name
// followed by its arguments. It is never passed through a shell.
type Spec struct {
	Name string
	Args []string
}

// String renders the spec for logging.
func (s Spec) String() string {
	if len(s.Args) == 0 {
		return s.Name
	}
	return s.Name + " " + strings.Join(s.Args, " ")
}

// Runner executes commands with timeout and output capture.
type Runner struct {
	logger *slog.Logger
}

// New creates a Runner that logs diagnostics through the given logger.
func New(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes the spec with the given timeout and converts every
// failure mode into a typed Result. It never returns a Go error and
// never panics for an externally triggerable condition: a missing
// executable, a timeout, a non-zero exit, or an OS-level exec failure
// all come back as a Result with OK=false and a FailureReason set.
//
// The child is started in its own process group and the whole group is
// killed with SIGKILL on timeout.
func (r *Runner) Run(ctx context.Context, spec Spec, timeout time.Duration) *Result {
	result := &Result{
		StartedAt: time.Now(),
		ExitCode:  -1,
	}

	if spec.Name == "" {
		result.Reason = ReasonExecFailure
		result.Stderr = "empty command spec"
		r.logger.Error("rejecting empty command spec")
		return result
	}
	if timeout <= 0 {
		result.Reason = ReasonExecFailure
		result.Stderr = "non-positive timeout"
		r.logger.Error("rejecting non-positive timeout",
			slog.String("command", spec.String()))
		return result
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, spec.Name, spec.Args...)

	// New process group so the kill on timeout reaches any children
	// the tool may have forked.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// Kill the entire process group (negative PID) on cancel.
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	// WaitDelay ensures orphaned pipe holders don't block Wait().
	cmd.WaitDelay = 5 * time.Second

	err := cmd.Run()
	result.Duration = time.Since(result.StartedAt)
	result.Output = strings.TrimRight(stdout.String(), " \t\r\n")
	result.Stderr = strings.TrimSpace(stderr.String())

	if err == nil {
		result.OK = true
		result.ExitCode = 0
		result.Reason = ReasonNone
		return result
	}

	switch {
	case execCtx.Err() == context.DeadlineExceeded:
		result.Reason = ReasonTimeout
		r.logger.Warn("command timed out",
			slog.String("command", spec.String()),
			slog.Duration("timeout", timeout))

	case errors.Is(err, exec.ErrNotFound):
		result.Reason = ReasonNotFound
		r.logger.Warn("command not found",
			slog.String("command", spec.Name))

	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.Reason = ReasonExitError
			result.ExitCode = exitErr.ExitCode()
			r.logger.Warn("command exited non-zero",
				slog.String("command", spec.String()),
				slog.Int("exit_code", result.ExitCode),
				slog.String("stderr", result.Stderr))
		} else {
			result.Reason = ReasonExecFailure
			result.Stderr = err.Error()
			r.logger.Warn("command execution failed",
				slog.String("command", spec.String()),
				slog.String("error", err.Error()))
		}
	}

	return result
}
