// Package logging provides leveled logging for solveplot.
// Operational output goes to a slog.Logger on stderr; user-facing results
// are written by the commands themselves.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// LevelTrace sits below slog.LevelDebug. Trace records describe the loaded
// table: its path and shape, and how every column label was classified.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel returns the slog level for a logging.level setting.
// "debug" adds per-row statistics, "trace" adds table loading details.
// Anything else, including "", means info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewLogger returns a text logger writing records at or above level to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: traceLabel,
	}))
}

// traceLabel prints LevelTrace as TRACE instead of slog's "DEBUG-4".
func traceLabel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}

// Trace logs msg at LevelTrace.
func Trace(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}
