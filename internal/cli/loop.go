package cli

import (
	"fmt"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/peterpangl/sipxecs/internal/errorutil"
)

// LoopOptions holds the flags of the loop command.
type LoopOptions struct {
	Message string
	Forks   []string
}

// NewLoopCommand creates the loop command.
func NewLoopCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoopOptions{}

	cmd := &cobra.Command{
		Use:   "loop",
		Short: "Check a received request for a fork loop",
		Long: `Build the server branch id from the top Via of the request, record the --fork
targets on it, and print the 1-based Via hop that closes a loop, or 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return errtrace.Wrap(runLoop(cmd, rootOpts, opts))
		},
	}

	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", `SIP request file ("-" for stdin)`)
	cmd.Flags().StringArrayVar(&opts.Forks, "fork", nil, "fork target URI (repeatable)")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func runLoop(cmd *cobra.Command, rootOpts *RootOptions, opts *LoopOptions) error {
	msg, err := readMessage(cmd, opts.Message)
	if err != nil {
		return errtrace.Wrap(err)
	}
	branches := msg.ViaBranches()
	if len(branches) == 0 {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("request has no Via"))
	}
	forks, err := parseForks(opts.Forks)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if len(forks) > 0 {
		if err := rootOpts.requireSecret(); err != nil {
			return errtrace.Wrap(err)
		}
	}

	srv := rootOpts.generator().FromInbound(branches[0])
	for _, f := range forks {
		if err := srv.AddFork(f); err != nil {
			return errtrace.Wrap(err)
		}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), srv.LoopDetected(msg))
	return errtrace.Wrap(err)
}
