package log

import (
	"log/slog"
	"strings"
)

// Syslog-style priorities that have no direct [slog] counterpart.
const (
	LevelNotice = slog.Level(2)
	LevelCrit   = slog.Level(12)
	LevelAlert  = slog.Level(16)
	LevelEmerg  = slog.Level(20)
)

var levelsByName = map[string]slog.Level{
	"DEBUG":   slog.LevelDebug,
	"INFO":    slog.LevelInfo,
	"NOTICE":  LevelNotice,
	"WARNING": slog.LevelWarn,
	"WARN":    slog.LevelWarn,
	"ERR":     slog.LevelError,
	"ERROR":   slog.LevelError,
	"CRIT":    LevelCrit,
	"ALERT":   LevelAlert,
	"EMERG":   LevelEmerg,
}

// ParseLevel decodes a priority name such as "NOTICE" or "err".
// The second result is false when the name is unknown.
func ParseLevel(name string) (slog.Level, bool) {
	l, ok := levelsByName[strings.ToUpper(strings.TrimSpace(name))]
	return l, ok
}

// LevelName returns the priority name of l, rounding down to the closest known priority.
func LevelName(l slog.Level) string {
	switch {
	case l >= LevelEmerg:
		return "EMERG"
	case l >= LevelAlert:
		return "ALERT"
	case l >= LevelCrit:
		return "CRIT"
	case l >= slog.LevelError:
		return "ERR"
	case l >= slog.LevelWarn:
		return "WARNING"
	case l >= LevelNotice:
		return "NOTICE"
	case l >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
