// Package cli implements the radialstack command-line interface.
//
// Commands read a table (CSV, JSON or Parquet), reshape it into one record
// per segment and draw it as a radial stacked chart. Every flag can also be
// set in .radialstack.toml or through RADIALSTACK_* environment variables.
//
// # Commands
//
//   - render: write SVG, JSON, PNG or PDF charts
//   - transform: print the segment records
//   - inspect: browse segments and layer bands interactively
//   - serve: run the HTTP host
//   - mcp: run the Model Context Protocol host on stdio
//   - options: print the editable style options
//   - cache: manage the rendered-artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every pipeline stage through the observability hooks.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Rendered chart (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
