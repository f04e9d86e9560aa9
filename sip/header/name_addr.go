package header

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/peterpangl/sipxecs/internal/stringutils"
	"github.com/peterpangl/sipxecs/sip/uri"
)

// NameAddr is the value of From, To and each Contact entry.
type NameAddr struct {
	DisplayName string
	URI         *uri.SIP
	Params      Values
}

// Tag returns the tag parameter or an empty string.
func (addr NameAddr) Tag() string {
	t, _ := addr.Params.Get("tag")
	return t
}

func (addr NameAddr) RenderTo(w io.Writer) error {
	if addr.DisplayName != "" {
		if _, err := fmt.Fprint(w, quote(addr.DisplayName), " "); err != nil {
			return errtrace.Wrap(err)
		}
	}
	if _, err := fmt.Fprint(w, "<", addr.URI.RenderURI(), ">"); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(renderHeaderParams(w, addr.Params))
}

func (addr NameAddr) String() string {
	sb := stringutils.NewStrBldr()
	defer stringutils.FreeStrBldr(sb)
	_ = addr.RenderTo(sb)
	return sb.String()
}

func (addr NameAddr) Equal(val any) bool {
	var other NameAddr
	switch v := val.(type) {
	case NameAddr:
		other = v
	case *NameAddr:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return addr.URI.Equal(other.URI) &&
		compareHeaderParams(addr.Params, other.Params, map[string]bool{"tag": true})
}

func (addr NameAddr) Clone() NameAddr {
	addr.URI = addr.URI.Clone()
	addr.Params = addr.Params.Clone()
	return addr
}

// ParseNameAddr parses name-addr or addr-spec followed by header parameters.
// Parameters after a bare addr-spec belong to the header, not to the URI.
func ParseNameAddr(s string) (NameAddr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NameAddr{}, errtrace.Wrap(ErrEmptyInput)
	}

	var (
		addr         NameAddr
		uriStr, rest string
	)
	if lt := indexOutsideQuotes(s, '<'); lt >= 0 {
		gt := strings.IndexByte(s[lt:], '>')
		if gt < 0 {
			return NameAddr{}, errtrace.Wrap(newMalformedInputErr("unterminated URI in %q", s))
		}
		addr.DisplayName = unquote(strings.TrimSpace(s[:lt]))
		uriStr, rest = s[lt+1:lt+gt], s[lt+gt+1:]
	} else {
		i := strings.IndexByte(s, ';')
		if i < 0 {
			i = len(s)
		}
		uriStr, rest = s[:i], s[i:]
	}

	u, err := uri.ParseSIP(uriStr)
	if err != nil {
		return NameAddr{}, errtrace.Wrap(newMalformedInputErr(err))
	}
	addr.URI = u
	if addr.Params, err = parseHeaderParams(rest); err != nil {
		return NameAddr{}, errtrace.Wrap(err)
	}
	return addr, nil
}

func indexOutsideQuotes(s string, c byte) int {
	var quoted, escaped bool
	for i := 0; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case quoted && s[i] == '\\':
			escaped = true
		case s[i] == '"':
			quoted = !quoted
		case !quoted && s[i] == c:
			return i
		}
	}
	return -1
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string { return `"` + quoteReplacer.Replace(s) + `"` }

func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	s = s[1 : len(s)-1]
	if !strings.Contains(s, `\`) {
		return s
	}
	sb := stringutils.NewStrBldr()
	defer stringutils.FreeStrBldr(sb)
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// Contact is the list of Contact entries. An empty non-nil list stands for the "*" wildcard.
type Contact []NameAddr

func (Contact) CanonicName() Name { return "Contact" }

func (hdr Contact) IsWildcard() bool { return hdr != nil && len(hdr) == 0 }

func (hdr Contact) String() string {
	if hdr.IsWildcard() {
		return "*"
	}
	vals := make([]string, len(hdr))
	for i := range hdr {
		vals[i] = hdr[i].String()
	}
	return strings.Join(vals, ", ")
}

func (hdr Contact) Equal(val any) bool {
	var other Contact
	switch v := val.(type) {
	case Contact:
		other = v
	case *Contact:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.EqualFunc(hdr, other, func(a1, a2 NameAddr) bool { return a1.Equal(a2) })
}

// ParseContact parses a Contact header value.
func ParseContact(s string) (Contact, error) {
	if strings.TrimSpace(s) == "*" {
		return Contact{}, nil
	}
	vals := splitHeaderValues(s)
	if len(vals) == 0 {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}
	hdr := make(Contact, 0, len(vals))
	for _, v := range vals {
		addr, err := ParseNameAddr(v)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		hdr = append(hdr, addr)
	}
	return hdr, nil
}
