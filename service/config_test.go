package service_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/peterpangl/sipxecs/internal/log"
	"github.com/peterpangl/sipxecs/service"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("os.WriteFile(%q) error = %v, want nil", path, err)
	}
	return path
}

func TestConfigDB_Unmarshal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    map[string]any
		wantErr error
	}{
		{"empty", "", map[string]any{}, nil},
		{
			"settings",
			"# comment\n\nSIP_DOMAIN_NAME : example.com\r\n  SIP_REALM:example.com  \nEMPTY :\nNO_COLON\nURL : http://host:8080/x\n",
			map[string]any{
				"SIP_DOMAIN_NAME": "example.com",
				"SIP_REALM":       "example.com",
				"EMPTY":           "",
				"NO_COLON":        "",
				"URL":             "http://host:8080/x",
			},
			nil,
		},
		{"blank key", " : value\n", nil, service.ErrMalformedConfig},
		{"key with space", "BAD KEY : value\n", nil, service.ErrMalformedConfig},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := service.ConfigDBParser().Unmarshal([]byte(c.in))
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("Unmarshal() error = %v, want %v\ndiff (-got +want):\n%v", err, c.wantErr, diff)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("Unmarshal() = %v, want %v\ndiff (-got +want):\n%v", got, c.want, diff)
			}
		})
	}
}

func TestConfigDB_Marshal(t *testing.T) {
	t.Parallel()

	p := service.ConfigDBParser()
	in := map[string]any{"B": "2", "A": "1 : one", "C": ""}

	b, err := p.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v, want nil", err)
	}
	if want := "A : 1 : one\nB : 2\nC : \n"; string(b) != want {
		t.Errorf("Marshal() = %q, want %q", b, want)
	}

	back, err := p.Unmarshal(b)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v, want nil", err)
	}
	if diff := cmp.Diff(back, in); diff != "" {
		t.Errorf("round trip diff (-got +want):\n%v", diff)
	}

	if _, err := p.Marshal(map[string]any{"N": 1}); err == nil {
		t.Errorf("Marshal(non-string) error = nil, want error")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "registrar-config", "REGISTRAR_LOG_LEVEL : debug\nREGISTRAR_PORT : 5070\n")
	yamlFile := writeFile(t, dir, "registrar.yaml", "REGISTRAR_LOG_LEVEL: ERR\nREGISTRAR_PORT: 5071\n")

	cfg, err := service.LoadConfig(cfgFile)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil", err)
	}
	if cfg.File() != cfgFile {
		t.Errorf("cfg.File() = %q, want %q", cfg.File(), cfgFile)
	}
	if got := cfg.Get("REGISTRAR_PORT"); got != "5070" {
		t.Errorf("cfg.Get(REGISTRAR_PORT) = %q, want 5070", got)
	}
	if _, ok := cfg.Lookup("MISSING"); ok {
		t.Errorf("cfg.Lookup(MISSING) ok = true, want false")
	}
	if diff := cmp.Diff(cfg.Keys(), []string{"REGISTRAR_LOG_LEVEL", "REGISTRAR_PORT"}, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("cfg.Keys() diff (-got +want):\n%v", diff)
	}

	ycfg, err := service.LoadConfig(yamlFile)
	if err != nil {
		t.Fatalf("LoadConfig(yaml) error = %v, want nil", err)
	}
	if got := ycfg.Get("REGISTRAR_PORT"); got != "5071" {
		t.Errorf("ycfg.Get(REGISTRAR_PORT) = %q, want 5071", got)
	}
	if got := ycfg.LogLevel("REGISTRAR", log.Noop); got != slog.LevelError {
		t.Errorf("ycfg.LogLevel() = %v, want %v", got, slog.LevelError)
	}

	_, err = service.LoadConfig(filepath.Join(dir, "missing-config"))
	if diff := cmp.Diff(err, error(service.ErrConfigNotFound), cmpopts.EquateErrors()); diff != "" {
		t.Errorf("LoadConfig(missing) error = %v, want %v", err, service.ErrConfigNotFound)
	}

	bad := writeFile(t, dir, "bad-config", "NOT A KEY : x\n")
	_, err = service.LoadConfig(bad)
	if diff := cmp.Diff(err, error(service.ErrMalformedConfig), cmpopts.EquateErrors()); diff != "" {
		t.Errorf("LoadConfig(bad) error = %v, want %v", err, service.ErrMalformedConfig)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SIPX_SHARED_SECRET", "from-env")

	file := writeFile(t, t.TempDir(), "domain-config", "SHARED_SECRET : from-file\nSIP_REALM : example.com\n")
	cfg, err := service.LoadConfig(file)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil", err)
	}
	if got := cfg.Get(service.KeySharedSecret); got != "from-env" {
		t.Errorf("cfg.Get(SHARED_SECRET) = %q, want from-env", got)
	}
	if got := cfg.Get(service.KeySIPRealm); got != "example.com" {
		t.Errorf("cfg.Get(SIP_REALM) = %q, want example.com", got)
	}
}

func TestConfig_LogLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want slog.Level
	}{
		{"", service.DefaultLogLevel},
		{"PROXY_LOG_LEVEL : DEBUG\n", slog.LevelDebug},
		{"PROXY_LOG_LEVEL : info\n", slog.LevelInfo},
		{"PROXY_LOG_LEVEL : NOTICE\n", log.LevelNotice},
		{"PROXY_LOG_LEVEL : warning\n", slog.LevelWarn},
		{"PROXY_LOG_LEVEL : err\n", slog.LevelError},
		{"PROXY_LOG_LEVEL : CRIT\n", log.LevelCrit},
		{"PROXY_LOG_LEVEL : alert\n", log.LevelAlert},
		{"PROXY_LOG_LEVEL : EMERG\n", log.LevelEmerg},
		{"PROXY_LOG_LEVEL : LOUD\n", service.DefaultLogLevel},
		{"PROXY_LOG_LEVEL :\n", service.DefaultLogLevel},
		{"REGISTRAR_LOG_LEVEL : DEBUG\n", service.DefaultLogLevel},
	}

	dir := t.TempDir()
	for i, c := range cases {
		file := writeFile(t, dir, "proxy-config-"+string(rune('a'+i)), c.in)
		cfg, err := service.LoadConfig(file)
		if err != nil {
			t.Fatalf("LoadConfig(%q) error = %v, want nil", c.in, err)
		}
		if got := cfg.LogLevel("PROXY", log.Noop); got != c.want {
			t.Errorf("LogLevel() for %q = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestConfig_Domain(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "domain-config", `SIP_DOMAIN_NAME : example.com
SIP_DOMAIN_ALIASES : 10.0.0.1 pbx.example.com  sip.example.com
SIP_REALM : realm.example.com
SHARED_SECRET : c2VjcmV0
SUPERVISOR_PORT : 8092
CONFIG_HOSTS : cfg1.example.com cfg2.example.com
`)
	cfg, err := service.LoadConfig(file)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil", err)
	}
	got, err := cfg.Domain()
	if err != nil {
		t.Fatalf("cfg.Domain() error = %v, want nil", err)
	}
	want := service.DomainConfig{
		Name:           "example.com",
		Realm:          "realm.example.com",
		Aliases:        []string{"10.0.0.1", "pbx.example.com", "sip.example.com"},
		SharedSecret:   "c2VjcmV0",
		SupervisorPort: 8092,
		ConfigHosts:    []string{"cfg1.example.com", "cfg2.example.com"},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("cfg.Domain() diff (-got +want):\n%v", diff)
	}
}
