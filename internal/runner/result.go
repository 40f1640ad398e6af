// result.go defines the command execution result structure.
// Every failure mode of an external command is converted into a typed
// Result so callers never have to handle a raw error or panic.
package runner

import "time"

// FailureReason classifies why a command produced no usable output.
type FailureReason string

const (
	// ReasonNone means the command succeeded.
	ReasonNone FailureReason = ""

	// ReasonNotFound means the executable was not on the search path.
	ReasonNotFound FailureReason = "command not found"

	// ReasonTimeout means the command exceeded its deadline and its
	// process group was killed.
	ReasonTimeout FailureReason = "timeout"

	// ReasonExitError means the command ran but exited non-zero.
	ReasonExitError FailureReason = "execution error"

	// ReasonExecFailure covers every other OS-level failure to run the
	// command (permissions, resource limits, invalid spec).
	ReasonExecFailure FailureReason = "execution failure"
)

// Result holds the outcome of a single command execution.
type Result struct {
	// OK is true only when the command exited zero within the timeout.
	OK bool

	// Output is the captured standard output with trailing whitespace
	// trimmed. Only meaningful when OK is true.
	Output string

	// Stderr is captured standard error, kept for diagnostics.
	Stderr string

	// Reason classifies the failure. ReasonNone when OK.
	Reason FailureReason

	// ExitCode is the process exit code. -1 indicates timeout or that
	// the process never ran.
	ExitCode int

	// Duration is how long the command took to execute.
	Duration time.Duration

	// StartedAt is when execution began.
	StartedAt time.Time
}
