package header

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/peterpangl/sipxecs/internal/stringutils"
	"github.com/peterpangl/sipxecs/internal/types"
	"github.com/peterpangl/sipxecs/sip/internal/grammar"
)

// Via is a list of Via hops, topmost first.
type Via []ViaHop

func (Via) CanonicName() Name { return "Via" }

func (hdr Via) RenderTo(w io.Writer) error {
	if hdr == nil {
		return nil
	}
	if _, err := fmt.Fprint(w, hdr.CanonicName(), ": "); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(hdr.renderValue(w))
}

func (hdr Via) renderValue(w io.Writer) error {
	for i := range hdr {
		if i > 0 {
			if _, err := fmt.Fprint(w, ", "); err != nil {
				return errtrace.Wrap(err)
			}
		}
		if err := hdr[i].RenderTo(w); err != nil {
			return errtrace.Wrap(err)
		}
	}
	return nil
}

func (hdr Via) Render() string {
	if hdr == nil {
		return ""
	}
	sb := stringutils.NewStrBldr()
	defer stringutils.FreeStrBldr(sb)
	_ = hdr.RenderTo(sb)
	return sb.String()
}

func (hdr Via) String() string {
	sb := stringutils.NewStrBldr()
	defer stringutils.FreeStrBldr(sb)
	sb.WriteByte('[')
	_ = hdr.renderValue(sb)
	sb.WriteByte(']')
	return sb.String()
}

func (hdr Via) Clone() Via {
	if hdr == nil {
		return nil
	}
	hdr2 := make(Via, len(hdr))
	for i := range hdr {
		hdr2[i] = hdr[i].Clone()
	}
	return hdr2
}

func (hdr Via) Equal(val any) bool {
	var other Via
	switch v := val.(type) {
	case Via:
		other = v
	case *Via:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.EqualFunc(hdr, other, func(hop1, hop2 ViaHop) bool { return hop1.Equal(hop2) })
}

func (hdr Via) IsValid() bool {
	return len(hdr) > 0 && !slices.ContainsFunc(hdr, func(hop ViaHop) bool { return !hop.IsValid() })
}

// Branches returns the branch parameter of every hop, topmost first.
// Hops without a branch contribute an empty string.
func (hdr Via) Branches() []string {
	branches := make([]string, len(hdr))
	for i := range hdr {
		branches[i] = hdr[i].Branch()
	}
	return branches
}

// ParseVia parses a Via header value that may carry several comma separated hops.
func ParseVia(s string) (Via, error) {
	vals := splitHeaderValues(s)
	if len(vals) == 0 {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}
	hdr := make(Via, 0, len(vals))
	for _, v := range vals {
		hop, err := ParseViaHop(v)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		hdr = append(hdr, hop)
	}
	return hdr, nil
}

// ProtoInfo is the protocol name and version of a Via hop, e.g. SIP/2.0.
type ProtoInfo struct {
	Name    string
	Version string
}

func (p ProtoInfo) String() string { return p.Name + "/" + p.Version }

func (p ProtoInfo) Equal(other ProtoInfo) bool {
	return stringutils.EqFold(p.Name, other.Name) && p.Version == other.Version
}

func (p ProtoInfo) IsValid() bool { return grammar.IsToken(p.Name) && grammar.IsToken(p.Version) }

func (p ProtoInfo) IsZero() bool { return p.Name == "" && p.Version == "" }

type ViaHop struct {
	Proto     ProtoInfo
	Transport string
	Addr      Addr
	Params    Values
}

// Branch returns the branch parameter or an empty string.
func (hop ViaHop) Branch() string {
	b, _ := hop.Params.Get("branch")
	return b
}

func (hop ViaHop) RenderTo(w io.Writer) error {
	if _, err := fmt.Fprint(w, hop.Proto, "/", hop.Transport, " ", hop.Addr); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(renderHeaderParams(w, hop.Params))
}

func (hop ViaHop) String() string {
	sb := stringutils.NewStrBldr()
	defer stringutils.FreeStrBldr(sb)
	_ = hop.RenderTo(sb)
	return sb.String()
}

func (hop ViaHop) Equal(val any) bool {
	var other ViaHop
	switch v := val.(type) {
	case ViaHop:
		other = v
	case *ViaHop:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return hop.Proto.Equal(other.Proto) &&
		stringutils.EqFold(hop.Transport, other.Transport) &&
		hop.Addr.Equal(other.Addr) &&
		compareHeaderParams(hop.Params, other.Params, map[string]bool{
			"maddr":    true,
			"ttl":      true,
			"received": true,
			"branch":   true,
		})
}

func (hop ViaHop) IsValid() bool {
	return hop.Proto.IsValid() &&
		grammar.IsToken(hop.Transport) &&
		hop.Addr.Host() != ""
}

func (hop ViaHop) IsZero() bool {
	return hop.Proto.IsZero() &&
		hop.Transport == "" &&
		hop.Addr.IsZero() &&
		len(hop.Params) == 0
}

func (hop ViaHop) Clone() ViaHop {
	hop.Params = hop.Params.Clone()
	return hop
}

// ParseViaHop parses a single Via hop: sent-protocol LWS sent-by *( SEMI via-params ).
func ParseViaHop(s string) (ViaHop, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ViaHop{}, errtrace.Wrap(ErrEmptyInput)
	}

	name, rest, ok1 := stringutils.CutLWS(s, "/")
	ver, rest, ok2 := stringutils.CutLWS(rest, "/")
	if !ok1 || !ok2 {
		return ViaHop{}, errtrace.Wrap(newMalformedInputErr("invalid sent-protocol in %q", s))
	}
	i := strings.IndexAny(rest, " \t")
	if i < 0 {
		return ViaHop{}, errtrace.Wrap(newMalformedInputErr("missing sent-by in %q", s))
	}
	hop := ViaHop{
		Proto:     ProtoInfo{Name: name, Version: ver},
		Transport: rest[:i],
	}
	if !hop.Proto.IsValid() || !grammar.IsToken(hop.Transport) {
		return ViaHop{}, errtrace.Wrap(newMalformedInputErr("invalid sent-protocol in %q", s))
	}

	sentBy, params, hasParams := strings.Cut(strings.TrimSpace(rest[i:]), ";")
	addr, err := types.ParseAddr(sentBy)
	if err != nil {
		return ViaHop{}, errtrace.Wrap(newMalformedInputErr(err))
	}
	hop.Addr = addr
	if hasParams {
		if hop.Params, err = parseHeaderParams(";" + params); err != nil {
			return ViaHop{}, errtrace.Wrap(err)
		}
	}
	return hop, nil
}
