// Package cli implements the signupboard command-line interface.
//
// This package provides commands for laying out and rendering signup
// boards, previewing them in the terminal, serving them over HTTP and
// managing the event store and the render cache. The CLI is built using
// cobra and viper and logs through the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Lay out an event and write the board as JSON
//   - render: Generate SVG, PNG, PDF, JSON or Graphviz output
//   - preview: Browse a board in the terminal
//   - serve: Run the HTTP API
//   - events: List, show, import and delete stored events
//   - cache: Manage the render cache
//
// # Configuration
//
// Every persistent flag can also be set through a SIGNUPBOARD_* environment
// variable or a --config file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs cache and layout events.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
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

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered spring-con (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
