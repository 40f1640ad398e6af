// Package report assembles collector sections into a single audit
// report and persists it to a uniquely named, timestamped file.
//
// Collectors run strictly in the order they were registered, so two
// reports from the same host are directly comparable. The timestamp is
// taken once at the start of the run and drives both the report header
// and the output file name. A file is never overwritten: creation uses
// O_EXCL and collides into a numeric suffix, so back-to-back runs get
// distinct files.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/doughall/hostaudit/internal/collect"
)

// sectionDelimiter frames each section title in the rendered report.
const sectionDelimiter = "---"

// timestampLayout names the report file; second precision, collisions
// handled by suffixing.
const timestampLayout = "20060102-150405"

// Aggregator runs collectors in order and writes the combined report.
type Aggregator struct {
	collectors []collect.Collector
	outDir     string
	logger     *slog.Logger
}

// NewAggregator creates an aggregator writing into outDir. Collectors
// run in the order given.
func NewAggregator(outDir string, logger *slog.Logger, collectors ...collect.Collector) *Aggregator {
	return &Aggregator{
		collectors: collectors,
		outDir:     outDir,
		logger:     logger,
	}
}

// Run executes every collector sequentially and writes the report.
// It returns the path of the written file. Collector failures have
// already degraded to placeholder sections by the time they reach the
// aggregator; the only error Run can return is a failure to persist
// the report itself.
func (a *Aggregator) Run(ctx context.Context) (string, error) {
	startedAt := time.Now()

	hostname, err := os.Hostname()
	if err != nil {
		a.logger.Warn("failed to resolve hostname", slog.String("error", err.Error()))
		hostname = "unknown"
	}

	var sections []collect.Section
	for _, c := range a.collectors {
		a.logger.Info("running check", slog.String("check", c.Name()))
		sections = append(sections, c.Collect(ctx))
	}

	content := render(hostname, startedAt, sections)

	path, err := a.writeReport(content, startedAt)
	if err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	a.logger.Info("report written",
		slog.String("path", path),
		slog.Int("sections", len(sections)),
		slog.Duration("elapsed", time.Since(startedAt)))
	return path, nil
}

// render serializes the report header and sections to one text blob.
func render(hostname string, ts time.Time, sections []collect.Section) string {
	var b strings.Builder

	rule := strings.Repeat("=", 52)
	b.WriteString(rule + "\n")
	b.WriteString(" Host Audit Report\n")
	fmt.Fprintf(&b, " Host:      %s\n", hostname)
	fmt.Fprintf(&b, " Generated: %s\n", ts.Format("2006-01-02 15:04:05 MST"))
	b.WriteString(rule + "\n")

	for _, s := range sections {
		fmt.Fprintf(&b, "\n%s %s %s\n%s\n", sectionDelimiter, s.Title, sectionDelimiter, s.Body)
	}

	return b.String()
}

// writeReport creates a new file named from the run timestamp and
// writes the content. The file is opened with O_EXCL; if a report from
// the same second already exists, a numeric suffix is appended so no
// prior report is ever appended to or overwritten.
func (a *Aggregator) writeReport(content string, ts time.Time) (string, error) {
	if err := os.MkdirAll(a.outDir, 0755); err != nil {
		return "", err
	}

	base := "audit-" + ts.Format(timestampLayout)
	for i := 0; ; i++ {
		name := base + ".txt"
		if i > 0 {
			name = fmt.Sprintf("%s-%d.txt", base, i)
		}
		path := filepath.Join(a.outDir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", err
		}

		if _, err := f.WriteString(content); err != nil {
			f.Close()
			return "", err
		}
		if err := f.Close(); err != nil {
			return "", err
		}
		return path, nil
	}
}
