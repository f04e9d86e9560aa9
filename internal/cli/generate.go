package cli

import (
	"fmt"
	"strings"

	"braces.dev/errtrace"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/peterpangl/sipxecs/internal/errorutil"
	"github.com/peterpangl/sipxecs/internal/randutils"
	"github.com/peterpangl/sipxecs/sip"
	"github.com/peterpangl/sipxecs/sip/branch"
	"github.com/peterpangl/sipxecs/sip/header"
)

// GenerateOptions holds the flags of the generate command.
type GenerateOptions struct {
	Message    string
	CallID     string
	CSeq       string
	FromTag    string
	To         string
	RequestURI string
	Parent     string
	Forks      []string
	Via        string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a client branch id",
		Long: `Build the branch id of a client transaction.

The call-identifying fields come from the SIP message in --message, or from the flags.
With --parent the id is forked from the server branch id given as the parent value,
after the --fork targets were recorded on it, and inherits its loop key.
With --via the new hop is prepended to the message, which is printed instead of the id.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return errtrace.Wrap(runGenerate(cmd, rootOpts, opts))
		},
	}

	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", `SIP request file ("-" for stdin)`)
	cmd.Flags().StringVar(&opts.CallID, "call-id", "", "Call-ID (default random UUID)")
	cmd.Flags().StringVar(&opts.CSeq, "cseq", "1 INVITE", "CSeq")
	cmd.Flags().StringVar(&opts.FromTag, "from-tag", "", "From tag (default random)")
	cmd.Flags().StringVar(&opts.To, "to", "", "To URI (default the request URI)")
	cmd.Flags().StringVar(&opts.RequestURI, "request-uri", "sip:example.com", "request URI")
	cmd.Flags().StringVar(&opts.Parent, "parent", "", "inbound branch value of the parent server transaction")
	cmd.Flags().StringArrayVar(&opts.Forks, "fork", nil, "fork target URI recorded on the parent (repeatable)")
	cmd.Flags().StringVar(&opts.Via, "via", "", `Via hop to prepend, e.g. "SIP/2.0/UDP proxy.example.com"`)

	return cmd
}

func runGenerate(cmd *cobra.Command, rootOpts *RootOptions, opts *GenerateOptions) error {
	if err := rootOpts.requireSecret(); err != nil {
		return errtrace.Wrap(err)
	}
	if len(opts.Forks) > 0 && opts.Parent == "" {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("--fork requires --parent"))
	}

	msg, err := opts.message(cmd)
	if err != nil {
		return errtrace.Wrap(err)
	}

	gen := rootOpts.generator()
	var id branch.ClientID
	if opts.Parent != "" {
		forks, err := parseForks(opts.Forks)
		if err != nil {
			return errtrace.Wrap(err)
		}
		parent := gen.FromInbound(opts.Parent)
		for _, f := range forks {
			if err := parent.AddFork(f); err != nil {
				return errtrace.Wrap(err)
			}
		}
		id = gen.FromParent(parent, msg)
	} else {
		id = gen.FromMessage(msg)
	}

	if opts.Via == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), id)
		return errtrace.Wrap(err)
	}
	hop, err := header.ParseViaHop(opts.Via)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if hop.Params == nil {
		hop.Params = make(header.Values)
	}
	hop.Params.Set("branch", id.String())
	msg.PrependVia(hop)
	return errtrace.Wrap(msg.RenderTo(cmd.OutOrStdout()))
}

func (opts *GenerateOptions) message(cmd *cobra.Command) (*sip.Message, error) {
	if opts.Message != "" {
		return errtrace.Wrap2(readMessage(cmd, opts.Message))
	}

	cseq, err := header.ParseCSeq(opts.CSeq)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	callID := opts.CallID
	if callID == "" {
		callID = uuid.NewString()
	}
	fromTag := opts.FromTag
	if fromTag == "" {
		fromTag = randutils.Token(10)
	}
	to := opts.To
	if to == "" {
		to = opts.RequestURI
	}

	msg := sip.NewRequest(cseq.Method, opts.RequestURI)
	msg.AppendHeader("Call-ID", callID)
	msg.AppendHeader("CSeq", cseq.String())
	msg.AppendHeader("From", "<sip:sipxbranch@localhost>;tag="+fromTag)
	msg.AppendHeader("To", "<"+strings.Trim(to, "<>")+">")
	return msg, nil
}
