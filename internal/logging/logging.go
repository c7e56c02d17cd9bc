// Package logging builds the process logger: the log/slog API backed by a
// charmbracelet/log handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	charm "github.com/charmbracelet/log"
)

// Formats accepted by New.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// New returns a logger writing to w at the given level ("debug", "info",
// "warn", "error") and format.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := charm.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	var formatter charm.Formatter
	switch format {
	case "", FormatText:
		formatter = charm.TextFormatter
	case FormatJSON:
		formatter = charm.JSONFormatter
	case FormatLogfmt:
		formatter = charm.LogfmtFormatter
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	handler := charm.NewWithOptions(w, charm.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: true,
	})
	return slog.New(handler), nil
}

// Component returns l tagged with a component name.
func Component(l *slog.Logger, name string) *slog.Logger {
	return l.With("component", name)
}
