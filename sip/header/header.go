// Package header implements the SIP headers needed to build and match branch ids:
// Via, the name-addr family (From, To, Contact) and CSeq.
package header

import (
	"fmt"
	"io"
	"net/textproto"
	"strings"

	"braces.dev/errtrace"

	"github.com/peterpangl/sipxecs/internal/errorutil"
	"github.com/peterpangl/sipxecs/internal/stringutils"
	"github.com/peterpangl/sipxecs/internal/types"
	"github.com/peterpangl/sipxecs/sip/internal/grammar"
)

type Error = errorutil.Error

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

type Name string

func (n Name) ToCanonic() Name { return CanonicName(n) }

func (n Name) IsValid() bool { return grammar.IsToken(n) }

var headerNames = map[string]Name{
	"c":       "Content-Type",
	"e":       "Content-Encoding",
	"f":       "From",
	"i":       "Call-ID",
	"k":       "Supported",
	"l":       "Content-Length",
	"m":       "Contact",
	"s":       "Subject",
	"t":       "To",
	"v":       "Via",
	"Call-Id": "Call-ID",
	"Cseq":    "CSeq",
}

// CanonicName converts name to the canonical form.
// The canonicalization converts the first letter and any letter following a hyphen to upper case;
// the rest are converted to lowercase. For example, the canonical name for "call-id" is "Call-ID".
// Also, any compact name is converted to its full canonical form. For example, "v" converts to "Via".
func CanonicName[T ~string](name T) Name {
	name = stringutils.TrimSP(name)
	if n, ok := headerNames[string(name)]; ok {
		return n
	}

	name = T(textproto.CanonicalMIMEHeaderKey(string(name)))
	if n, ok := headerNames[string(name)]; ok {
		return n
	}
	return Name(name)
}

type Addr = types.Addr

func Host(host string) Addr { return types.Host(host) }

func HostPort(host string, port uint16) Addr { return types.HostPort(host, port) }

type Values = types.Values

// renderHeaderParams writes params in lexical order of names.
func renderHeaderParams(w io.Writer, params Values) error {
	for _, k := range params.Keys() {
		v, _ := params.Get(k)
		if _, err := fmt.Fprint(w, ";", k); err != nil {
			return errtrace.Wrap(err)
		}
		if v != "" {
			if _, err := fmt.Fprint(w, "=", v); err != nil {
				return errtrace.Wrap(err)
			}
		}
	}
	return nil
}

// parseHeaderParams parses ";name[=value]" sequences. Quoted values keep their quotes.
func parseHeaderParams(s string) (Values, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	s, ok := strings.CutPrefix(s, ";")
	if !ok {
		return nil, errtrace.Wrap(newMalformedInputErr("unexpected %q before parameters", s))
	}

	params := make(Values)
	for _, p := range stringutils.SplitOutsideQuotes(s, ';') {
		k, v, _ := stringutils.CutLWS(p, "=")
		if !grammar.IsToken(k) {
			return nil, errtrace.Wrap(newMalformedInputErr("invalid parameter name %q", k))
		}
		params.Append(k, v)
	}
	return params, nil
}

func compareHeaderParams(params1, params2 Values, specParams map[string]bool) bool {
	for k := range specParams {
		if params1.Has(k) != params2.Has(k) {
			return false
		}
	}
	for k := range params1 {
		if !params2.Has(k) {
			continue
		}
		v1, _ := params1.Get(k)
		v2, _ := params2.Get(k)
		if !stringutils.EqFold(v1, v2) {
			return false
		}
	}
	return true
}

// splitHeaderValues splits a comma separated header value into entries.
func splitHeaderValues(s string) []string {
	parts := stringutils.SplitOutsideQuotes(s, ',')
	vals := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			vals = append(vals, p)
		}
	}
	return vals
}

var nilTag = "<nil>"
