// hostaudit - Entry Point
//
// hostaudit is a one-shot reconnaissance utility for a single Linux
// host. One run performs the full audit and writes one timestamped
// plain-text report:
//   - Host summary (platform, kernel, hardware)
//   - Actively logged-in users (who)
//   - Recent login history (last)
//   - Listening TCP/UDP sockets with owning processes (ss)
//   - Cloud instance detection (metadata service probe)
//
// Checks run sequentially in a fixed order; a failed check degrades to
// a placeholder section and never aborts the run. The process exits 0
// once the report is written, even if every section degraded; only a
// configuration error or a report write failure exits non-zero.
//
// Configuration is optional and loaded from /etc/hostaudit/config.yaml
// (or the path given with -config) when present.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/doughall/hostaudit/internal/collect"
	"github.com/doughall/hostaudit/internal/config"
	"github.com/doughall/hostaudit/internal/logging"
	"github.com/doughall/hostaudit/internal/report"
	"github.com/doughall/hostaudit/internal/runner"
	"github.com/doughall/hostaudit/internal/version"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "path to configuration file")
	outputDir := flag.String("output", "", "report output directory (overrides config)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	writeConfig := flag.Bool("write-config", false, "write the default configuration file and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if *writeConfig {
		if err := config.Save(*configPath, config.Default()); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(*configPath)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		// Basic stderr logging before the logger is configured
		fmt.Fprintf(os.Stderr, "ERROR: failed to load configuration from %s: %v\n", *configPath, err)
		os.Exit(1)
	}
	if *outputDir != "" {
		cfg.ReportDir = *outputDir
	}

	logger := logging.SetupLogger(cfg.LogLevel)

	logger.Info("audit starting",
		slog.String("version", version.Version),
		slog.String("report_dir", cfg.ReportDir),
		slog.Int("command_timeout_s", cfg.CommandTimeoutSeconds),
	)

	// Cancel the run on SIGTERM/SIGINT; an interrupted command is
	// reported like any other failed check.
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	run := runner.New(logging.WithComponent(logger, "runner"))
	timeout := cfg.CommandTimeout()

	// Fixed check order; the report layout depends on it.
	collectors := []collect.Collector{
		collect.NewHostSummary(logging.WithComponent(logger, "host")),
		collect.NewActiveUsers(run, timeout, logging.WithComponent(logger, "users")),
		collect.NewLoginHistory(run, timeout, cfg.LoginHistoryLimit, logging.WithComponent(logger, "logins")),
		collect.NewListeningPorts(run, timeout, logging.WithComponent(logger, "ports")),
		collect.NewCloudDetect(cfg.MetadataEndpoint, cfg.MetadataTimeout(), logging.WithComponent(logger, "cloud")),
	}

	agg := report.NewAggregator(cfg.ReportDir, logging.WithComponent(logger, "report"), collectors...)

	path, err := agg.Run(ctx)
	if err != nil {
		logger.Error("audit failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(path)
}
