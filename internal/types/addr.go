package types

import (
	"net"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/peterpangl/sipxecs/internal/errorutil"
	"github.com/peterpangl/sipxecs/internal/stringutils"
)

// Addr is a container for host and optional port.
type Addr struct {
	host    string
	ip      net.IP
	port    uint16
	hasPort bool
}

// Host returns an [Addr] containing the provided host and no port.
func Host(host string) Addr {
	host = strings.Trim(host, "[]")
	ip := net.ParseIP(host)
	if v := ip.To4(); v != nil {
		ip = v
	}
	return Addr{host: host, ip: ip}
}

// HostPort returns an [Addr] containing the provided host and port.
func HostPort(host string, port uint16) Addr {
	addr := Host(host)
	addr.port, addr.hasPort = port, true
	return addr
}

// ParseAddr parses a "host[:port]" string into an [Addr].
// IPv6 hosts must be enclosed in brackets when a port follows.
func ParseAddr(s string) (Addr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Addr{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("empty address"))
	}

	host, portStr := s, ""
	if s[0] == '[' {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return Addr{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("unterminated IPv6 reference %q", s))
		}
		host = s[1:end]
		if rest := s[end+1:]; rest != "" {
			var ok bool
			if portStr, ok = strings.CutPrefix(rest, ":"); !ok {
				return Addr{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("unexpected %q after IPv6 reference", rest))
			}
		}
	} else if i := strings.LastIndexByte(s, ':'); i >= 0 {
		if strings.Count(s, ":") > 1 {
			// bare IPv6 address without port
			return Host(s), nil
		}
		host, portStr = s[:i], s[i+1:]
	}

	if host == "" {
		return Addr{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("empty host in %q", s))
	}
	if portStr == "" {
		if strings.HasSuffix(s, ":") {
			return Addr{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("empty port in %q", s))
		}
		return Host(host), nil
	}
	port, err := strconv.ParseUint(strings.TrimSpace(portStr), 10, 16)
	if err != nil {
		return Addr{}, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	return HostPort(strings.TrimSpace(host), uint16(port)), nil
}

// Host returns the hostname portion of the address as provided during construction or parsing.
func (addr Addr) Host() string { return addr.host }

// IP returns the parsed IP representation when the host is an IP literal, otherwise nil.
func (addr Addr) IP() net.IP { return addr.ip }

// Port returns the port, in case it is set, and bool flag indicating whether it is set.
func (addr Addr) Port() (uint16, bool) { return addr.port, addr.hasPort }

// String formats the address as host[:port], adding brackets for IPv6 literals.
func (addr Addr) String() string {
	host := addr.host
	if addr.ip != nil {
		host = addr.ip.String()
	}
	if !addr.hasPort {
		if strings.Contains(host, ":") {
			host = "[" + host + "]"
		}
		return host
	}
	return net.JoinHostPort(host, strconv.Itoa(int(addr.port)))
}

// Canonic returns the address with the host lower-cased.
func (addr Addr) Canonic() string {
	return stringutils.LCase(addr.String())
}

// Equal compares hosts case-insensitively and ports exactly.
func (addr Addr) Equal(other Addr) bool {
	if addr.ip != nil || other.ip != nil {
		if !addr.ip.Equal(other.ip) {
			return false
		}
	} else if !stringutils.EqFold(addr.host, other.host) {
		return false
	}
	return addr.port == other.port && addr.hasPort == other.hasPort
}

// IsZero reports whether the address has neither host nor port.
func (addr Addr) IsZero() bool { return addr.host == "" && !addr.hasPort }
