// Package logger configures the process-wide slog logger.
package logger

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"
)

var programLevel = new(slog.LevelVar)

// ParseLevel maps a level name (trace, debug, info, warn, error) to a level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return slog.Level(-8), nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Setup installs a text (or JSON) handler writing to w as the default slog
// logger. An unknown level falls back to info.
func Setup(w io.Writer, level string, jsonFormat bool) *slog.Logger {
	lvl, err := ParseLevel(level)
	programLevel.Set(lvl)

	opts := &slog.HandlerOptions{Level: programLevel}
	var h slog.Handler
	if jsonFormat {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	l := slog.New(h)
	slog.SetDefault(l)
	if err != nil {
		l.Warn("falling back to info level", "err", err)
	}
	return l
}

// Discard silences both slog and the standard log package. Used by the TUI
// when no log file is configured, since anything written to the terminal
// would corrupt the screen.
func Discard() {
	log.SetOutput(io.Discard)
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// SetLevel changes the level of the logger installed by Setup.
func SetLevel(l slog.Level) {
	programLevel.Set(l)
}
