// Package uri implements SIP URIs.
package uri

import (
	"github.com/peterpangl/sipxecs/internal/errorutil"
	"github.com/peterpangl/sipxecs/internal/types"
	"github.com/peterpangl/sipxecs/sip/internal/grammar"
)

type Error = errorutil.Error

const (
	ErrEmptyInput        Error = "empty input"
	ErrMalformedInput    Error = "malformed input"
	ErrUnsupportedScheme Error = "unsupported URI scheme"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

type Addr = types.Addr

func Host(host string) Addr { return types.Host(host) }

func HostPort(host string, port uint16) Addr { return types.HostPort(host, port) }

type Values = types.Values

func shouldEscapeURIParamChar(c byte) bool { return !grammar.IsURIParamCharUnreserved(c) }

func shouldEscapeURIHeaderChar(c byte) bool { return !grammar.IsURIHeaderCharUnreserved(c) }
