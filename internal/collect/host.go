// host.go summarizes static host facts (platform, kernel, hardware)
// using gopsutil. Individual probe failures are logged and the summary
// continues with partial data.
package collect

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// HostSummary collects a one-shot snapshot of host identity and
// hardware facts for the top of the report.
type HostSummary struct {
	logger *slog.Logger
}

// NewHostSummary creates the host summary collector.
func NewHostSummary(logger *slog.Logger) *HostSummary {
	return &HostSummary{logger: logger}
}

// Name implements Collector.
func (c *HostSummary) Name() string { return "Host Summary" }

// Collect gathers host, CPU and memory facts. Each probe degrades
// independently; the section is only a placeholder when nothing at all
// could be collected.
func (c *HostSummary) Collect(ctx context.Context) Section {
	var b strings.Builder

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		c.logger.Warn("failed to collect host info", slog.String("error", err.Error()))
	} else {
		fmt.Fprintf(&b, "Hostname:       %s\n", info.Hostname)
		fmt.Fprintf(&b, "Platform:       %s %s (%s)\n", info.Platform, info.PlatformVersion, info.PlatformFamily)
		fmt.Fprintf(&b, "Kernel:         %s (%s)\n", info.KernelVersion, info.KernelArch)
		fmt.Fprintf(&b, "Architecture:   %s\n", runtime.GOARCH)
		if info.VirtualizationSystem != "" {
			fmt.Fprintf(&b, "Virtualization: %s (%s)\n", info.VirtualizationSystem, info.VirtualizationRole)
		}
		fmt.Fprintf(&b, "Uptime:         %s\n", formatUptime(info.Uptime))
		fmt.Fprintf(&b, "Processes:      %d\n", info.Procs)
	}

	cpuInfo, err := cpu.InfoWithContext(ctx)
	if err != nil {
		c.logger.Warn("failed to collect CPU info", slog.String("error", err.Error()))
	} else if len(cpuInfo) > 0 {
		fmt.Fprintf(&b, "CPU:            %s\n", cpuInfo[0].ModelName)
	}
	if threads, err := cpu.CountsWithContext(ctx, true); err == nil {
		fmt.Fprintf(&b, "CPU Threads:    %d\n", threads)
	}

	memInfo, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		c.logger.Warn("failed to collect memory info", slog.String("error", err.Error()))
	} else {
		fmt.Fprintf(&b, "Memory:         %d MiB total, %.1f%% used\n",
			memInfo.Total/(1024*1024), memInfo.UsedPercent)
	}

	body := strings.TrimRight(b.String(), "\n")
	if body == "" {
		return Section{Title: c.Name(), Body: "Host information unavailable."}
	}
	return Section{Title: c.Name(), Body: body}
}

// formatUptime renders seconds of uptime as days/hours/minutes.
func formatUptime(seconds uint64) string {
	d := time.Duration(seconds) * time.Second
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
