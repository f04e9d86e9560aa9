package uri

import (
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/peterpangl/sipxecs/internal/errorutil"
	"github.com/peterpangl/sipxecs/internal/stringutils"
	"github.com/peterpangl/sipxecs/internal/types"
	"github.com/peterpangl/sipxecs/sip/internal/grammar"
)

// SIP represents a SIP or SIPS URI.
type SIP struct {
	User    UserInfo // username and passwd
	Addr    Addr     // host and port
	Params  Values   // parameters
	Headers Values   // headers
	Secured bool
}

func (u *SIP) URIScheme() string {
	if u.Secured {
		return "sips"
	}
	return "sip"
}

func (u *SIP) Clone() *SIP {
	if u == nil {
		return nil
	}
	u2 := *u
	u2.Params = u.Params.Clone()
	u2.Headers = u.Headers.Clone()
	return &u2
}

// RenderURI renders the URI with parameters and headers sorted by name.
func (u *SIP) RenderURI() string {
	if u == nil {
		return ""
	}
	sb := stringutils.NewStrBldr()
	defer stringutils.FreeStrBldr(sb)

	sb.WriteString(u.URIScheme())
	sb.WriteByte(':')
	if !u.User.IsZero() {
		sb.WriteString(u.User.String())
		sb.WriteByte('@')
	}
	sb.WriteString(u.Addr.String())
	u.renderParams(sb, u.Params, nil)
	u.renderHeaders(sb)
	return sb.String()
}

func (u *SIP) renderParams(sb *strings.Builder, params Values, skip func(name string) bool) {
	for _, k := range params.Keys() {
		if skip != nil && skip(k) {
			continue
		}
		v, _ := params.Get(k)
		sb.WriteByte(';')
		sb.WriteString(grammar.Escape(k, shouldEscapeURIParamChar))
		if v != "" {
			sb.WriteByte('=')
			sb.WriteString(grammar.Escape(v, shouldEscapeURIParamChar))
		}
	}
}

func (u *SIP) renderHeaders(sb *strings.Builder) {
	if len(u.Headers) == 0 {
		return
	}
	sb.WriteByte('?')
	var i int
	for _, k := range u.Headers.Keys() {
		for _, v := range u.Headers[k] {
			if i > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(grammar.Escape(k, shouldEscapeURIHeaderChar))
			sb.WriteByte('=')
			sb.WriteString(grammar.Escape(v, shouldEscapeURIHeaderChar))
			i++
		}
	}
}

func (u *SIP) String() string {
	if u == nil {
		return "<nil>"
	}
	return u.RenderURI()
}

// RetargetParamPrefixes lists URI parameter name prefixes that proxies add or rewrite
// while retargeting a request. They never take part in an address-of-record.
var RetargetParamPrefixes = []string{"x-sipx-"}

func isRetargetParam(name string) bool {
	name = stringutils.LCase(name)
	return slices.ContainsFunc(RetargetParamPrefixes, func(p string) bool {
		return strings.HasPrefix(name, stringutils.LCase(p))
	})
}

// AddrOfRecord returns the canonical address-of-record form of the URI.
// The password, URI headers and retargeting parameters are dropped, the host is lower-cased
// and the remaining parameters are sorted by name, so two contacts that differ only in
// those details produce the same string.
func (u *SIP) AddrOfRecord() string {
	if u == nil {
		return ""
	}
	sb := stringutils.NewStrBldr()
	defer stringutils.FreeStrBldr(sb)

	sb.WriteString(u.URIScheme())
	sb.WriteByte(':')
	if usr := u.User.Username(); usr != "" {
		sb.WriteString(grammar.Escape(usr, shouldEscapeUserChar))
		sb.WriteByte('@')
	}
	sb.WriteString(u.Addr.Canonic())
	u.renderParams(sb, u.Params, isRetargetParam)
	return sb.String()
}

// Equal compares URIs following RFC 3261 Section 19.1.4 in a simplified way:
// parameters present in only one URI are ignored unless they are one of
// transport, user, method, maddr, ttl or lr; headers must match exactly.
func (u *SIP) Equal(val any) bool {
	var other *SIP
	switch v := val.(type) {
	case SIP:
		other = &v
	case *SIP:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	return u.Secured == other.Secured &&
		u.User.Equal(other.User) &&
		u.Addr.Equal(other.Addr) &&
		compareParams(u.Params, other.Params) &&
		compareHeaders(u.Headers, other.Headers)
}

var sipURISpecParams = map[string]bool{
	"transport": true,
	"user":      true,
	"method":    true,
	"maddr":     true,
	"ttl":       true,
	"lr":        true,
}

func compareParams(ps1, ps2 Values) bool {
	for k := range sipURISpecParams {
		if ps1.Has(k) != ps2.Has(k) {
			return false
		}
	}
	for k := range ps1 {
		if !ps2.Has(k) {
			continue
		}
		v1, _ := ps1.Get(k)
		v2, _ := ps2.Get(k)
		if !stringutils.EqFold(v1, v2) {
			return false
		}
	}
	return true
}

func compareHeaders(hs1, hs2 Values) bool {
	if len(hs1) != len(hs2) {
		return false
	}
	for k, vs := range hs1 {
		if !slices.Equal(vs, hs2[k]) {
			return false
		}
	}
	return true
}

// IsValid checks that the URI has a host.
func (u *SIP) IsValid() bool {
	return u != nil && u.Addr.Host() != ""
}

// ParseSIP parses a "sip:" or "sips:" URI.
func ParseSIP(s string) (*SIP, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}

	scheme, rest, ok := strings.Cut(s, ":")
	if !ok {
		return nil, errtrace.Wrap(newMalformedInputErr("missing scheme in %q", s))
	}
	u := new(SIP)
	switch stringutils.LCase(scheme) {
	case "sip":
	case "sips":
		u.Secured = true
	default:
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnsupportedScheme, "%q", scheme))
	}

	s, hdrs, hasHdrs := strings.Cut(rest, "?")
	if hasHdrs {
		h, err := parseURIHeaders(hdrs)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		u.Headers = h
	}

	if at := strings.IndexByte(s, '@'); at >= 0 {
		usr, passwd, hasPasswd := strings.Cut(s[:at], ":")
		if usr == "" {
			return nil, errtrace.Wrap(newMalformedInputErr("empty user in %q", s))
		}
		if hasPasswd {
			u.User = UserPassword(grammar.Unescape(usr), grammar.Unescape(passwd))
		} else {
			u.User = User(grammar.Unescape(usr))
		}
		s = s[at+1:]
	}

	hostport, params, _ := strings.Cut(s, ";")
	addr, err := types.ParseAddr(hostport)
	if err != nil {
		return nil, errtrace.Wrap(newMalformedInputErr(err))
	}
	u.Addr = addr

	if params != "" {
		ps, err := parseURIParams(params)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		u.Params = ps
	}
	return u, nil
}

func parseURIParams(s string) (Values, error) {
	params := make(Values)
	for _, p := range strings.Split(s, ";") {
		k, v, _ := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if k == "" {
			return nil, errtrace.Wrap(newMalformedInputErr("empty URI parameter name in %q", s))
		}
		params.Append(grammar.Unescape(k), grammar.Unescape(strings.TrimSpace(v)))
	}
	return params, nil
}

func parseURIHeaders(s string) (Values, error) {
	hdrs := make(Values)
	for _, h := range strings.Split(s, "&") {
		k, v, ok := strings.Cut(h, "=")
		if !ok || k == "" {
			return nil, errtrace.Wrap(newMalformedInputErr("invalid URI header %q", h))
		}
		hdrs.Append(grammar.Unescape(k), grammar.Unescape(v))
	}
	return hdrs, nil
}

// UserInfo is a container for user credentials.
// It is typically used in [SIP] to store userinfo part.
type UserInfo struct {
	usrname, passwd string
	hasPasswd       bool
}

// User returns a [UserInfo] containing the provided username and no password.
func User(usrname string) UserInfo {
	return UserInfo{usrname: usrname}
}

// UserPassword returns a [UserInfo] containing the provided username and password.
func UserPassword(usrname, passwd string) UserInfo {
	return UserInfo{usrname: usrname, passwd: passwd, hasPasswd: true}
}

func (ui UserInfo) Username() string { return ui.usrname }

// Password returns the password, in case it is set, and bool flag indicating whether it is set.
func (ui UserInfo) Password() (string, bool) { return ui.passwd, ui.hasPasswd }

func shouldEscapeUserChar(c byte) bool { return !grammar.IsURIUserCharUnreserved(c) }

func (ui UserInfo) String() string {
	sb := stringutils.NewStrBldr()
	defer stringutils.FreeStrBldr(sb)
	sb.WriteString(grammar.Escape(ui.usrname, shouldEscapeUserChar))
	if ui.hasPasswd {
		sb.WriteByte(':')
		sb.WriteString(grammar.Escape(ui.passwd, shouldEscapeUserChar))
	}
	return sb.String()
}

func (ui UserInfo) Equal(other UserInfo) bool {
	return ui.usrname == other.usrname && ui.passwd == other.passwd && ui.hasPasswd == other.hasPasswd
}

func (ui UserInfo) IsZero() bool { return ui.usrname == "" && ui.passwd == "" && !ui.hasPasswd }
