// Package cli implements the sipxbranch command line tool.
package cli

//go:generate errtrace -w .

import (
	"context"
	"log/slog"
	"os"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/peterpangl/sipxecs/internal/errorutil"
	"github.com/peterpangl/sipxecs/internal/log"
	"github.com/peterpangl/sipxecs/service"
	"github.com/peterpangl/sipxecs/sip/branch"
)

// RootOptions holds the global flags of every command.
type RootOptions struct {
	Secret    string
	ConfigDir string
	LogLevel  string
	Dev       bool

	secrets *branch.SecretStore
	log     *slog.Logger
}

// NewRootCommand creates the sipxbranch root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sipxbranch",
		Short: "Build, inspect and check sipX Via branch ids",
		Long: `Build, inspect and check the Via branch parameter values issued by sipX proxies.

Branch ids are signed with the shared secret of the domain. The secret is taken from
--secret, or from SHARED_SECRET in the domain-config file of the configuration directory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return errtrace.Wrap(opts.setup(cmd))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Secret, "secret", "", "shared secret that signs branch ids")
	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "configuration directory (overrides SIPX_CONFDIR)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "NOTICE", "log level (DEBUG|INFO|NOTICE|WARNING|ERR|CRIT|ALERT|EMERG)")
	cmd.PersistentFlags().BoolVar(&opts.Dev, "dev", false, "developer log output")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewLoopCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

func (o *RootOptions) setup(cmd *cobra.Command) error {
	lvl, ok := log.ParseLevel(o.LogLevel)
	if !ok {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown log level %q", o.LogLevel))
	}
	log.SetLevel(lvl)
	o.log = log.New(cmd.ErrOrStderr(), o.Dev)

	o.secrets = branch.NewSecretStore([]byte(o.Secret))
	if o.secrets.IsSet() {
		return nil
	}
	file, err := o.paths().Path(service.ConfDir, service.DomainConfigName)
	if err != nil {
		return errtrace.Wrap(err)
	}
	cfg, err := service.LoadConfig(file)
	if err != nil {
		o.log.LogAttrs(context.Background(), slog.LevelDebug, "domain config not loaded", slog.Any("error", err))
		return nil
	}
	o.secrets.Set([]byte(cfg.Get(service.KeySharedSecret)))
	return nil
}

func (o *RootOptions) paths() *service.Paths {
	return &service.Paths{
		LookupEnv: func(key string) (string, bool) {
			if key == string(service.ConfDir) && o.ConfigDir != "" {
				return o.ConfigDir, true
			}
			return os.LookupEnv(key)
		},
		Log: o.log,
	}
}

func (o *RootOptions) generator() *branch.Generator {
	return branch.NewGenerator(&branch.GeneratorOptions{
		Secrets: o.secrets,
		Log:     o.log,
	})
}

func (o *RootOptions) requireSecret() error {
	if !o.secrets.IsSet() {
		return errtrace.Wrap(errorutil.NewWrapperError(branch.ErrSecretNotSet,
			"use --secret or set SHARED_SECRET in %s", service.DomainConfigName))
	}
	return nil
}
