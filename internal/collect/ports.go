// ports.go reports listening TCP and UDP sockets with their owning
// processes via ss(8). Parsing is defensive: the header and any row
// that does not match the expected column layout are skipped, so
// malformed tool output degrades the listing instead of aborting it.
package collect

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/doughall/hostaudit/internal/runner"
)

// Listener is one normalized listening socket entry.
type Listener struct {
	Proto   string
	Port    int
	Process string
}

// ListeningPorts lists TCP/UDP listeners and their owning processes.
type ListeningPorts struct {
	runner  CommandRunner
	timeout time.Duration
	logger  *slog.Logger
}

// NewListeningPorts creates the listening ports collector.
func NewListeningPorts(r CommandRunner, timeout time.Duration, logger *slog.Logger) *ListeningPorts {
	return &ListeningPorts{runner: r, timeout: timeout, logger: logger}
}

// Name implements Collector.
func (c *ListeningPorts) Name() string { return "Listening Ports" }

// Collect runs ss -tulnp and renders the parsed listeners as aligned
// "proto port process" lines.
func (c *ListeningPorts) Collect(ctx context.Context) Section {
	spec := runner.Spec{Name: "ss", Args: []string{"-tulnp"}}
	res := c.runner.Run(ctx, spec, c.timeout)
	if !res.OK {
		return Section{Title: c.Name(), Body: unavailable(res.Reason)}
	}

	listeners, skipped := parseListeners(res.Output)
	if skipped > 0 {
		c.logger.Warn("skipped unparseable socket rows",
			slog.Int("skipped", skipped))
	}
	if len(listeners) == 0 {
		return Section{Title: c.Name(), Body: "No listening sockets detected."}
	}

	var b strings.Builder
	for _, l := range listeners {
		fmt.Fprintf(&b, "%-5s %6d  %s\n", l.Proto, l.Port, l.Process)
	}
	return Section{Title: c.Name(), Body: strings.TrimRight(b.String(), "\n")}
}

// processRe extracts the first process name and PID from an ss process
// column, e.g. users:(("sshd",pid=812,fd=3)).
var processRe = regexp.MustCompile(`\(\("([^"]+)",pid=(\d+)`)

// parseListeners parses ss -tulnp tabular output into normalized
// entries. The header line and every structurally invalid row are
// skipped; skipped counts the non-empty rows that were discarded.
//
// Expected columns: Netid State Recv-Q Send-Q Local:Port Peer:Port
// [Process]. The process column is absent when ss runs unprivileged;
// such rows are kept with a "-" process.
func parseListeners(text string) (listeners []Listener, skipped int) {
	for _, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if fields[0] == "Netid" {
			// header
			continue
		}
		if len(fields) < 6 {
			skipped++
			continue
		}

		port, ok := portOf(fields[4])
		if !ok {
			skipped++
			continue
		}

		process := "-"
		if len(fields) >= 7 {
			if m := processRe.FindStringSubmatch(fields[6]); m != nil {
				process = fmt.Sprintf("%s (pid %s)", m[1], m[2])
			}
		}

		listeners = append(listeners, Listener{
			Proto:   fields[0],
			Port:    port,
			Process: process,
		})
	}
	return listeners, skipped
}

// portOf extracts the numeric port from a local address such as
// 0.0.0.0:22, [::]:80 or *:631. A wildcard or non-numeric port fails.
func portOf(addr string) (int, bool) {
	idx := strings.LastIndex(addr, ":")
	if idx < 0 || idx == len(addr)-1 {
		return 0, false
	}
	port, err := strconv.Atoi(addr[idx+1:])
	if err != nil || port < 0 || port > 65535 {
		return 0, false
	}
	return port, true
}
