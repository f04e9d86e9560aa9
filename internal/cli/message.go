package cli

import (
	"io"
	"os"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/peterpangl/sipxecs/sip"
	"github.com/peterpangl/sipxecs/sip/uri"
)

// readMessage parses the SIP message in file, "-" meaning standard input.
func readMessage(cmd *cobra.Command, file string) (*sip.Message, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(sip.ParseMessage(data))
}

func parseForks(vals []string) ([]*uri.SIP, error) {
	forks := make([]*uri.SIP, 0, len(vals))
	for _, v := range vals {
		u, err := uri.ParseSIP(v)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		forks = append(forks, u)
	}
	return forks, nil
}
