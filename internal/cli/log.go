// Package cli implements the jewelry command-line interface.
//
// The CLI lays out tile sets on the diamond grid, shows the occupancy grid,
// previews layouts interactively and serves the layout API. It is built on
// cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - layout: Compute a layout and write it as JSON or YAML
//   - grid: Print the occupancy grid as a table
//   - preview: Explore column counts and last-line reordering interactively
//   - serve: Run the HTTP layout API
//   - cache: Manage the local layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs layout, cache and HTTP events.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level, with short timestamps
// like "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a layout pass took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Layout complete (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
