package cli

import (
	"os"
	"os/signal"
	"syscall"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/peterpangl/sipxecs/service"
)

// ServeOptions holds the flags of the serve command.
type ServeOptions struct {
	Name    string
	Prefix  string
	Version string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as a sipX service",
		Long: `Load <name>-config and domain-config, install the shared secret and follow
configuration changes announced on stdin or written to the configuration directory,
until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return errtrace.Wrap(runServe(cmd, rootOpts, opts))
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "sipxbranch", "service name")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "SIPXBRANCH", "configuration key prefix")
	cmd.Flags().StringVar(&opts.Version, "version", "dev", "reported version")

	return cmd
}

func runServe(cmd *cobra.Command, rootOpts *RootOptions, opts *ServeOptions) error {
	svcOpts := &service.Options{
		Paths:   rootOpts.paths(),
		Secrets: rootOpts.secrets,
		Log:     rootOpts.log,
	}
	if rootOpts.ConfigDir != "" {
		svcOpts.WorkDir = rootOpts.ConfigDir
	}
	svc, err := service.New(opts.Name, opts.Prefix, opts.Version, svcOpts)
	if err != nil {
		return errtrace.Wrap(err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return errtrace.Wrap(svc.Run(ctx, cmd.InOrStdin()))
}
