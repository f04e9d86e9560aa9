// Package service implements the bootstrap shared by sipX services:
// directory resolution, configuration loading, log level and branch secret setup,
// and configuration change notifications.
package service

//go:generate errtrace -w .

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"braces.dev/errtrace"
	"github.com/fsnotify/fsnotify"

	"github.com/peterpangl/sipxecs/internal/errorutil"
	"github.com/peterpangl/sipxecs/internal/log"
	"github.com/peterpangl/sipxecs/internal/types"
	"github.com/peterpangl/sipxecs/sip/branch"
)

type Error = errorutil.Error

const (
	ErrConfigNotFound  Error = "config file not found"
	ErrMalformedConfig Error = "malformed config"
)

// configChangedMsg starts a change notification line received on standard input.
const configChangedMsg = "CONFIG_CHANGED"

// Options are used to build a [Service].
type Options struct {
	// Paths resolves directories. If nil, the process environment is used.
	Paths *Paths
	// WorkDir is the directory of the service configuration file.
	// If empty, the configuration directory is used when it exists, otherwise the current directory.
	WorkDir string
	// Secrets receives the shared secret of the domain.
	// If nil, the process-wide store from [branch.DefaultSecretStore] is used.
	Secrets *branch.SecretStore
	// SetLevel applies the configured log level. If nil, [log.SetLevel] is used.
	SetLevel func(slog.Level)
	// Log is the logger. If nil, the [log.Default] is used.
	Log *slog.Logger
}

func (o *Options) paths() *Paths {
	if o == nil || o.Paths == nil {
		return defPaths
	}
	return o.Paths
}

func (o *Options) workDir() string {
	if o == nil {
		return ""
	}
	return o.WorkDir
}

func (o *Options) secrets() *branch.SecretStore {
	if o == nil || o.Secrets == nil {
		return branch.DefaultSecretStore()
	}
	return o.Secrets
}

func (o *Options) setLevel() func(slog.Level) {
	if o == nil || o.SetLevel == nil {
		return log.SetLevel
	}
	return o.SetLevel
}

func (o *Options) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Default()
	}
	return o.Log
}

// Service is a running sipX service.
// Change notifications may arrive concurrently from [Service.Run] and direct calls.
type Service struct {
	name, prefix, version string

	paths    *Paths
	workDir  string
	secrets  *branch.SecretStore
	setLevel func(slog.Level)
	log      *slog.Logger

	mu     sync.Mutex
	cfg    *Config
	domain *Config

	onConfig   types.Hooks[func(*Config)]
	onResource types.Hooks[func(fileType, file string)]
}

// New starts the service name whose log level is read from <prefix>_LOG_LEVEL.
// It fails when the service configuration file <name>-config cannot be loaded.
// A missing domain configuration or shared secret is logged and leaves the secret unset.
func New(name, prefix, version string, opts *Options) (*Service, error) {
	s := &Service{
		name:     name,
		prefix:   prefix,
		version:  version,
		paths:    opts.paths(),
		workDir:  opts.workDir(),
		secrets:  opts.secrets(),
		setLevel: opts.setLevel(),
		log:      opts.log().With(slog.String("service", name)),
	}
	s.setLevel(DefaultLogLevel)
	s.log.LogAttrs(context.Background(), log.LevelNotice, "service started", slog.String("version", version))

	if s.workDir == "" {
		wd, err := s.resolveWorkDir()
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		s.workDir = wd
	}

	cfg, err := LoadConfig(s.ConfigFile())
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	s.cfg = cfg
	s.applyLogLevel(cfg)

	s.domain = s.loadDomain()
	s.installSecret(s.domain, false)
	return s, nil
}

func (s *Service) resolveWorkDir() (string, error) {
	dir, err := s.paths.Dir(ConfDir)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
		return dir, nil
	}
	return errtrace.Wrap2(os.Getwd())
}

// Name returns the service name.
func (s *Service) Name() string { return s.name }

// WorkDir returns the directory holding the service configuration file.
func (s *Service) WorkDir() string { return s.workDir }

// ConfigFile returns the path of the service configuration file.
func (s *Service) ConfigFile() string {
	return filepath.Join(s.workDir, s.name+ConfigFileSuffix)
}

// DomainConfigFile returns the path of the domain configuration file.
func (s *Service) DomainConfigFile() string {
	path, err := s.paths.Path(ConfDir, DomainConfigName)
	if err != nil {
		// ConfDir is always known
		panic(err)
	}
	return path
}

// Config returns the current service configuration.
func (s *Service) Config() *Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Domain returns the current domain configuration.
// It returns an error wrapping [ErrConfigNotFound] if the file could not be loaded.
func (s *Service) Domain() (DomainConfig, error) {
	s.mu.Lock()
	domain := s.domain
	s.mu.Unlock()
	if domain == nil {
		return DomainConfig{}, errtrace.Wrap(errorutil.NewWrapperError(ErrConfigNotFound, "%s", s.DomainConfigFile()))
	}
	return errtrace.Wrap2(domain.Domain())
}

func (s *Service) applyLogLevel(cfg *Config) {
	lvl := cfg.LogLevel(s.prefix, s.log)
	s.setLevel(lvl)
	s.log.LogAttrs(context.Background(), lvl, "log level set", slog.String("level", log.LevelName(lvl)))
}

func (s *Service) loadDomain() *Config {
	file := s.DomainConfigFile()
	cfg, err := LoadConfig(file)
	if err != nil {
		s.log.LogAttrs(context.Background(), slog.LevelWarn, "failed to load domain config",
			slog.String("file", file),
			slog.Any("error", err),
		)
		return nil
	}
	return cfg
}

// installSecret puts the shared secret of domain into the secret store.
// On reload, a changed secret is installed and reported, since branches issued
// under the previous secret no longer verify.
func (s *Service) installSecret(domain *Config, reload bool) {
	var secret string
	if domain != nil {
		secret = domain.Get(KeySharedSecret)
	}
	switch {
	case secret == "":
		s.log.LogAttrs(context.Background(), slog.LevelWarn, "shared secret not configured, branches cannot be signed",
			slog.String("key", KeySharedSecret),
		)
	case reload:
		s.log.LogAttrs(context.Background(), slog.LevelWarn, "shared secret changed, previously issued branches will not verify")
	}
	if secret != "" || reload {
		s.secrets.Set([]byte(secret))
	}
}

// ConfigDBChanged reloads the service configuration after file changed.
// The log level is re-applied only when its setting changed. The domain configuration
// is reloaded as well and a changed shared secret is installed.
// Callbacks registered with [Service.OnConfigChanged] receive the reloaded configuration.
func (s *Service) ConfigDBChanged(file string) {
	s.log.LogAttrs(context.Background(), slog.LevelInfo, "config changed", slog.String("file", file))

	cfg := s.reload()
	if cfg == nil {
		return
	}
	for fn := range s.onConfig.All() {
		fn(cfg)
	}
}

func (s *Service) reload() *Config {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := LoadConfig(s.ConfigFile())
	if err != nil {
		s.log.LogAttrs(context.Background(), log.LevelCrit, "failed to reload config",
			slog.String("file", s.ConfigFile()),
			slog.Any("error", err),
		)
	} else {
		key := s.prefix + LogLevelSuffix
		oldLvl, _ := s.cfg.Lookup(key)
		newLvl, _ := cfg.Lookup(key)
		if oldLvl != newLvl {
			s.applyLogLevel(cfg)
		}
		s.cfg = cfg
	}

	if domain := s.loadDomain(); domain != nil {
		var oldSecret string
		if s.domain != nil {
			oldSecret = s.domain.Get(KeySharedSecret)
		}
		if domain.Get(KeySharedSecret) != oldSecret {
			s.installSecret(domain, true)
		}
		s.domain = domain
	}
	return cfg
}

// OnConfigChanged registers fn to be called after the service configuration was reloaded.
func (s *Service) OnConfigChanged(fn func(cfg *Config)) (remove func()) {
	return s.onConfig.Add(fn)
}

// ResourceChanged is called for changed files other than the service configuration.
// The change is logged and passed to the callbacks registered with [Service.OnResourceChanged].
func (s *Service) ResourceChanged(fileType, file string) {
	if s.onResource.Len() == 0 {
		s.log.LogAttrs(context.Background(), slog.LevelInfo, "resource changed, ignored",
			slog.String("file", file),
			slog.String("type", fileType),
		)
		return
	}
	s.log.LogAttrs(context.Background(), slog.LevelInfo, "resource changed",
		slog.String("file", file),
		slog.String("type", fileType),
	)
	for fn := range s.onResource.All() {
		fn(fileType, file)
	}
}

// OnResourceChanged registers fn to be called for changed files other than the service configuration.
func (s *Service) OnResourceChanged(fn func(fileType, file string)) (remove func()) {
	return s.onResource.Add(fn)
}

// HandleInput processes a notification line such as
//
//	CONFIG_CHANGED file '/etc/sipxpbx/registrar-config'
//
// A line naming the service configuration file is routed to [Service.ConfigDBChanged],
// other files to [Service.ResourceChanged]. Any other line is ignored.
func (s *Service) HandleInput(line string) {
	_, rest, ok := strings.Cut(line, configChangedMsg)
	if !ok {
		s.log.LogAttrs(context.Background(), slog.LevelDebug, "input ignored", slog.String("line", line))
		return
	}
	rest = strings.TrimSpace(rest)
	if strings.Contains(rest, s.ConfigFile()) {
		s.ConfigDBChanged(rest)
		return
	}

	fileType, quoted, ok := strings.Cut(rest, "'")
	if !ok {
		s.log.LogAttrs(context.Background(), slog.LevelWarn, "malformed change notification", slog.String("line", line))
		return
	}
	file := quoted
	if i := strings.LastIndexByte(quoted, '\''); i >= 0 {
		file = quoted[:i]
	}
	s.ResourceChanged(strings.TrimSpace(fileType), file)
}

// Run routes change notifications to the handlers until ctx is done.
// Notifications are read line by line from stdin, if not nil, and from write events
// on the files of the service and domain configuration directories.
func (s *Service) Run(ctx context.Context, stdin io.Reader) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer w.Close()

	dirs := []string{s.workDir}
	if d := filepath.Dir(s.DomainConfigFile()); d != s.workDir {
		dirs = append(dirs, d)
	}
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			s.log.LogAttrs(ctx, slog.LevelWarn, "failed to watch config directory",
				slog.String("dir", d),
				slog.Any("error", err),
			)
		}
	}

	var lines <-chan string
	if stdin != nil {
		lines = readLines(ctx, stdin)
	}

	s.log.LogAttrs(ctx, slog.LevelDebug, "waiting for config changes", slog.Any("dirs", dirs))
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			s.HandleInput(line)
		case evt, ok := <-w.Events:
			if !ok {
				return nil
			}
			if evt.Has(fsnotify.Write) || evt.Has(fsnotify.Create) {
				s.fileChanged(evt.Name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.LogAttrs(ctx, slog.LevelWarn, "config watcher error", slog.Any("error", err))
		}
	}
}

func (s *Service) fileChanged(file string) {
	switch filepath.Clean(file) {
	case filepath.Clean(s.ConfigFile()), filepath.Clean(s.DomainConfigFile()):
		s.ConfigDBChanged(file)
	default:
		s.ResourceChanged("file", file)
	}
}

func readLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
