package service

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"braces.dev/errtrace"

	"github.com/peterpangl/sipxecs/internal/errorutil"
	"github.com/peterpangl/sipxecs/internal/log"
)

// DirType names a sipX directory. The name doubles as the environment variable
// that overrides the compiled-in location.
type DirType string

const (
	ConfDir    DirType = "SIPX_CONFDIR"
	VarDir     DirType = "SIPX_VARDIR"
	LogDir     DirType = "SIPX_LOGDIR"
	RunDir     DirType = "SIPX_RUNDIR"
	TmpDir     DirType = "SIPX_TMPDIR"
	DBDir      DirType = "SIPX_DBDIR"
	DataDir    DirType = "SIPX_DATADIR"
	BinDir     DirType = "SIPX_BINDIR"
	LibExecDir DirType = "SIPX_LIBEXECDIR"
)

const (
	nameEnv     = "SIPXECS_NAME"
	defaultName = "sipXecs"
	pathSep     = "/"
)

var defaultDirs = map[DirType]string{
	ConfDir:    "/etc/sipxpbx",
	VarDir:     "/var/sipxdata",
	LogDir:     "/var/log/sipxpbx",
	RunDir:     "/var/run/sipxpbx",
	TmpDir:     "/var/sipxdata/tmp",
	DBDir:      "/var/sipxdata/sipdb",
	DataDir:    "/usr/share/sipxecs",
	BinDir:     "/usr/bin",
	LibExecDir: "/usr/libexec/sipXecs",
}

// Paths resolves sipX directories and file paths.
// The zero value reads the process environment and logs to [log.Default].
type Paths struct {
	// LookupEnv reads an environment override. If nil, [os.LookupEnv] is used.
	LookupEnv func(key string) (string, bool)
	// Log is the logger. If nil, the [log.Default] is used.
	Log *slog.Logger
}

func (p *Paths) lookupEnv(key string) (string, bool) {
	if p == nil || p.LookupEnv == nil {
		return os.LookupEnv(key)
	}
	return p.LookupEnv(key)
}

func (p *Paths) log() *slog.Logger {
	if p == nil || p.Log == nil {
		return log.Default()
	}
	return p.Log
}

// Dir returns the directory of type t without a trailing separator.
func (p *Paths) Dir(t DirType) (string, error) {
	return errtrace.Wrap2(p.Path(t, ""))
}

// Path returns the path of file inside the directory of type t, with exactly one
// separator between them. An empty file name returns the directory itself.
func (p *Paths) Path(t DirType, file string) (string, error) {
	dir, ok := p.lookupEnv(string(t))
	if ok && dir != "" {
		p.log().LogAttrs(context.Background(), log.LevelNotice, "directory overridden by environment",
			slog.String("type", string(t)),
			slog.String("dir", dir),
		)
	} else if dir, ok = defaultDirs[t]; !ok {
		return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown directory type %q", t))
	}

	var path string
	switch {
	case file == "":
		path = strings.TrimSuffix(dir, pathSep)
		if path == "" {
			path = pathSep
		}
	case strings.HasSuffix(dir, pathSep) && strings.HasPrefix(file, pathSep):
		path = dir + file[len(pathSep):]
	case strings.HasSuffix(dir, pathSep) || strings.HasPrefix(file, pathSep):
		path = dir + file
	default:
		path = dir + pathSep + file
	}

	p.log().LogAttrs(context.Background(), slog.LevelDebug, "path resolved",
		slog.String("type", string(t)),
		slog.String("file", file),
		slog.String("path", path),
	)
	return path, nil
}

// Name returns the name of the sipX system, overridable by SIPXECS_NAME.
func (p *Paths) Name() string {
	if name, ok := p.lookupEnv(nameEnv); ok && name != "" {
		p.log().LogAttrs(context.Background(), log.LevelNotice, "system name overridden by environment",
			slog.String("name", name),
		)
		return name
	}
	return defaultName
}

var defPaths = new(Paths)

// Path resolves file inside the directory of type t using the process environment.
func Path(t DirType, file string) (string, error) { return errtrace.Wrap2(defPaths.Path(t, file)) }
