// logins.go reports recent login history via last(1), bounded to the
// most recent records.
package collect

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/doughall/hostaudit/internal/runner"
)

// LoginHistory lists the most recent login records.
type LoginHistory struct {
	runner  CommandRunner
	timeout time.Duration
	limit   int
	logger  *slog.Logger
}

// NewLoginHistory creates the login history collector. limit bounds the
// number of records included in the section.
func NewLoginHistory(r CommandRunner, timeout time.Duration, limit int, logger *slog.Logger) *LoginHistory {
	return &LoginHistory{runner: r, timeout: timeout, limit: limit, logger: logger}
}

// Name implements Collector.
func (c *LoginHistory) Name() string { return "Login History" }

// Collect runs last(1) with a record limit. The output is additionally
// clamped to the first limit lines: last appends a wtmp footer and some
// implementations ignore -n, so the bound is enforced here regardless
// of what the tool returns. Fewer lines than the limit are kept as-is.
func (c *LoginHistory) Collect(ctx context.Context) Section {
	spec := runner.Spec{Name: "last", Args: []string{"-n", strconv.Itoa(c.limit)}}
	res := c.runner.Run(ctx, spec, c.timeout)
	if !res.OK {
		return Section{Title: c.Name(), Body: unavailable(res.Reason)}
	}
	if res.Output == "" {
		return Section{Title: c.Name(), Body: "No login history found."}
	}
	body := firstLines(res.Output, c.limit)
	c.logger.Debug("login history collected",
		slog.Int("lines", len(splitLines(body))))
	return Section{Title: c.Name(), Body: body}
}
