package service

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"braces.dev/errtrace"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/peterpangl/sipxecs/internal/errorutil"
	"github.com/peterpangl/sipxecs/internal/log"
)

const (
	ConfigFileSuffix = "-config"
	DomainConfigName = "domain-config"
	LogLevelSuffix   = "_LOG_LEVEL"
	// EnvPrefix marks environment variables that override configuration keys,
	// e.g. SIPX_SHARED_SECRET overrides SHARED_SECRET.
	EnvPrefix = "SIPX_"
)

// Domain configuration keys.
const (
	KeySIPDomainName    = "SIP_DOMAIN_NAME"
	KeySIPDomainAliases = "SIP_DOMAIN_ALIASES"
	KeySIPRealm         = "SIP_REALM"
	KeySharedSecret     = "SHARED_SECRET"
	KeySupervisorPort   = "SUPERVISOR_PORT"
	KeyConfigHosts      = "CONFIG_HOSTS"
)

// DefaultLogLevel is used when a service configuration does not set a valid level.
const DefaultLogLevel = log.LevelNotice

// keyDelim never occurs in configuration keys, so every key stays at the top level.
const keyDelim = "/"

// ConfigDBParser returns a [koanf.Parser] for sipX configuration files,
// one "KEY : value" setting per line. Blank lines and lines starting with '#' are skipped.
func ConfigDBParser() *ConfigDB { return &ConfigDB{} }

// ConfigDB implements [koanf.Parser] for sipX configuration files.
type ConfigDB struct{}

// Unmarshal decodes a configuration file into a flat map of string values.
// A line without a colon sets its key to an empty value.
func (*ConfigDB) Unmarshal(b []byte) (map[string]any, error) {
	out := make(map[string]any)
	sc := bufio.NewScanner(bytes.NewReader(b))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		key, val, _ := strings.Cut(line, ":")
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if key == "" || strings.ContainsAny(key, " \t") {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedConfig, "line %d: invalid key %q", n, key))
		}
		out[key] = val
	}
	if err := sc.Err(); err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedConfig, err))
	}
	return out, nil
}

// Marshal encodes a flat map into a configuration file with keys in lexical order.
func (*ConfigDB) Marshal(m map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		v, ok := m[k].(string)
		if !ok {
			return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("key %q: value of type %T is not a string", k, m[k]))
		}
		buf.WriteString(k)
		buf.WriteString(" : ")
		buf.WriteString(v)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func parserFor(file string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return ConfigDBParser()
	}
}

// Config is a loaded configuration file. It is immutable.
type Config struct {
	file string
	k    *koanf.Koanf
}

// LoadConfig reads file and applies SIPX_-prefixed environment overrides.
// Files ending in .yaml or .yml are parsed as YAML, everything else as "KEY : value" lines.
// A missing file returns an error wrapping [ErrConfigNotFound].
func LoadConfig(file string) (*Config, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrConfigNotFound, "%s", file))
		}
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(parseConfig(file, b))
}

func parseConfig(file string, b []byte) (*Config, error) {
	k := koanf.New(keyDelim)
	if err := k.Load(rawbytes.Provider(b), parserFor(file)); err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedConfig, "%s: %v", file, err))
	}
	if err := k.Load(env.Provider(EnvPrefix, keyDelim, func(s string) string {
		return strings.TrimPrefix(s, EnvPrefix)
	}), nil); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &Config{file: file, k: k}, nil
}

// File returns the path the configuration was loaded from.
func (c *Config) File() string { return c.file }

// Lookup returns the value of key and whether it is set.
func (c *Config) Lookup(key string) (string, bool) {
	if !c.k.Exists(key) {
		return "", false
	}
	return c.k.String(key), true
}

// Get returns the value of key or an empty string.
func (c *Config) Get(key string) string { return c.k.String(key) }

// Keys returns every configured key in lexical order.
func (c *Config) Keys() []string {
	keys := c.k.Keys()
	slices.Sort(keys)
	return keys
}

// LogLevel decodes the <prefix>_LOG_LEVEL setting.
// A missing setting is reported at warning level and an invalid one at error level;
// both fall back to [DefaultLogLevel].
func (c *Config) LogLevel(prefix string, logger *slog.Logger) slog.Level {
	key := prefix + LogLevelSuffix
	val, ok := c.Lookup(key)
	if !ok || val == "" {
		logger.Warn("log level not set, using default",
			slog.String("key", key),
			slog.String("level", log.LevelName(DefaultLogLevel)),
		)
		return DefaultLogLevel
	}
	lvl, ok := log.ParseLevel(val)
	if !ok {
		logger.Error("invalid log level, using default",
			slog.String("key", key),
			slog.String("value", val),
			slog.String("level", log.LevelName(DefaultLogLevel)),
		)
		return DefaultLogLevel
	}
	return lvl
}

// DomainConfig holds the settings shared by every service in the sipX domain.
type DomainConfig struct {
	Name           string   `koanf:"SIP_DOMAIN_NAME"`
	Realm          string   `koanf:"SIP_REALM"`
	Aliases        []string `koanf:"-"`
	SharedSecret   string   `koanf:"SHARED_SECRET"`
	SupervisorPort int      `koanf:"SUPERVISOR_PORT"`
	ConfigHosts    []string `koanf:"-"`
}

// Domain decodes the configuration as a domain configuration.
// Aliases and configuration hosts are whitespace-separated lists.
func (c *Config) Domain() (DomainConfig, error) {
	var dc DomainConfig
	if err := c.k.Unmarshal("", &dc); err != nil {
		return DomainConfig{}, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedConfig, "%s: %v", c.file, err))
	}
	dc.Aliases = strings.Fields(c.Get(KeySIPDomainAliases))
	dc.ConfigHosts = strings.Fields(c.Get(KeyConfigHosts))
	return dc, nil
}

// LogValue implements [slog.LogValuer]. The shared secret is never rendered.
func (dc DomainConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", dc.Name),
		slog.String("realm", dc.Realm),
		slog.Any("aliases", dc.Aliases),
		slog.Bool("secret_set", dc.SharedSecret != ""),
	)
}
