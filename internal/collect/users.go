// users.go reports actively logged-in user sessions via who(1).
package collect

import (
	"context"
	"log/slog"
	"time"

	"github.com/doughall/hostaudit/internal/runner"
)

// ActiveUsers lists the sessions currently logged in to the host.
type ActiveUsers struct {
	runner  CommandRunner
	timeout time.Duration
	logger  *slog.Logger
}

// NewActiveUsers creates the active users collector.
func NewActiveUsers(r CommandRunner, timeout time.Duration, logger *slog.Logger) *ActiveUsers {
	return &ActiveUsers{runner: r, timeout: timeout, logger: logger}
}

// Name implements Collector.
func (c *ActiveUsers) Name() string { return "Active Users" }

// Collect runs who(1). One session per output line; an empty listing is
// a valid result, not a failure.
func (c *ActiveUsers) Collect(ctx context.Context) Section {
	res := c.runner.Run(ctx, runner.Spec{Name: "who"}, c.timeout)
	if !res.OK {
		return Section{Title: c.Name(), Body: unavailable(res.Reason)}
	}
	if res.Output == "" {
		return Section{Title: c.Name(), Body: "No active users detected."}
	}
	c.logger.Debug("active users collected",
		slog.Int("sessions", len(splitLines(res.Output))))
	return Section{Title: c.Name(), Body: res.Output}
}
