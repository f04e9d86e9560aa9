package cli

import (
	"fmt"
	"text/tabwriter"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/peterpangl/sipxecs/sip/branch"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <branch>",
		Short: "Decode a branch id",
		Long: `Print the classification and the fields of a branch id, and whether it was
issued under the configured secret.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return errtrace.Wrap(runInspect(cmd, rootOpts, args[0]))
		},
	}
}

func runInspect(cmd *cobra.Command, rootOpts *RootOptions, value string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 1, ' ', 0)
	row := func(name string, val any) { fmt.Fprintf(tw, "%s:\t%v\n", name, val) }

	row("value", value)
	row("rfc3261", branch.IsRFC3261(value))
	tok, ok := branch.ParseToken(value)
	row("sipx", ok)
	if ok {
		row("counter", fmt.Sprintf("%d (0x%x)", tok.Counter, tok.Counter))
		row("unique", tok.Unique)
		if tok.LoopKey != "" {
			row("loop key", tok.LoopKey)
		} else {
			row("loop key", "-")
		}
		if rootOpts.secrets.IsSet() {
			row("verified", rootOpts.generator().Verify(value))
		} else {
			row("verified", "unknown, no secret")
		}
	}
	return errtrace.Wrap(tw.Flush())
}
