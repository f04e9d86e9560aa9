package log_test

import (
	"log/slog"
	"testing"

	"github.com/peterpangl/sipxecs/internal/log"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		want   slog.Level
		wantOk bool
	}{
		{"DEBUG", slog.LevelDebug, true},
		{"info", slog.LevelInfo, true},
		{" Notice ", log.LevelNotice, true},
		{"WARNING", slog.LevelWarn, true},
		{"warn", slog.LevelWarn, true},
		{"ERR", slog.LevelError, true},
		{"CRIT", log.LevelCrit, true},
		{"ALERT", log.LevelAlert, true},
		{"EMERG", log.LevelEmerg, true},
		{"", 0, false},
		{"LOUD", 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, ok := log.ParseLevel(c.name)
			if got != c.want || ok != c.wantOk {
				t.Errorf("log.ParseLevel(%q) = (%v, %v), want (%v, %v)", c.name, got, ok, c.want, c.wantOk)
			}
		})
	}
}

func TestLevelName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"DEBUG", "INFO", "NOTICE", "WARNING", "ERR", "CRIT", "ALERT", "EMERG"} {
		l, ok := log.ParseLevel(name)
		if !ok {
			t.Fatalf("log.ParseLevel(%q) failed", name)
		}
		if got := log.LevelName(l); got != name {
			t.Errorf("log.LevelName(%v) = %q, want %q", l, got, name)
		}
	}
	if got := log.LevelName(slog.Level(-10)); got != "DEBUG" {
		t.Errorf("log.LevelName(-10) = %q, want \"DEBUG\"", got)
	}
}

func TestSetDefault(t *testing.T) {
	orig := log.Default()
	t.Cleanup(func() { log.SetDefault(orig) })

	log.SetDefault(nil)
	if got := log.Default(); got != log.Noop {
		t.Errorf("log.Default() after SetDefault(nil) = %p, want log.Noop", got)
	}
}
