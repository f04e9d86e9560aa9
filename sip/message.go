package sip

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/peterpangl/sipxecs/internal/stringutils"
	"github.com/peterpangl/sipxecs/sip/header"
)

const ProtoVer20 = "SIP/2.0"

// HeaderField is a single header line of a message.
// Name is always in the canonical full form.
type HeaderField struct {
	Name  header.Name
	Value string
}

// Message is a SIP request or response.
// Requests have a non-empty Method, responses a non-zero StatusCode.
type Message struct {
	Method     string
	RURI       string
	Proto      string
	StatusCode int
	Reason     string
	Headers    []HeaderField
	Body       []byte
}

// NewRequest returns a request without headers.
func NewRequest(method, ruri string) *Message {
	return &Message{Method: stringutils.UCase(method), RURI: ruri, Proto: ProtoVer20}
}

// NewResponse returns a response without headers.
func NewResponse(code int, reason string) *Message {
	return &Message{StatusCode: code, Reason: reason, Proto: ProtoVer20}
}

func (msg *Message) IsRequest() bool { return msg.Method != "" }

func (msg *Message) StartLine() string {
	if msg.IsRequest() {
		return msg.Method + " " + msg.RURI + " " + msg.Proto
	}
	return msg.Proto + " " + strconv.Itoa(msg.StatusCode) + " " + msg.Reason
}

// Header returns the value of the first header with the given name.
func (msg *Message) Header(name string) (string, bool) {
	name2 := header.CanonicName(name)
	for _, f := range msg.Headers {
		if f.Name == name2 {
			return f.Value, true
		}
	}
	return "", false
}

// HeaderValues returns the values of every header with the given name in order.
func (msg *Message) HeaderValues(name string) []string {
	name2 := header.CanonicName(name)
	var vals []string
	for _, f := range msg.Headers {
		if f.Name == name2 {
			vals = append(vals, f.Value)
		}
	}
	return vals
}

func (msg *Message) AppendHeader(name, value string) {
	msg.Headers = append(msg.Headers, HeaderField{Name: header.CanonicName(name), Value: value})
}

func (msg *Message) PrependHeader(name, value string) {
	msg.Headers = slices.Insert(msg.Headers, 0, HeaderField{Name: header.CanonicName(name), Value: value})
}

// SetHeader replaces every header with the given name by a single one.
// A new header is appended if none exists.
func (msg *Message) SetHeader(name, value string) {
	name2 := header.CanonicName(name)
	i := slices.IndexFunc(msg.Headers, func(f HeaderField) bool { return f.Name == name2 })
	if i < 0 {
		msg.Headers = append(msg.Headers, HeaderField{Name: name2, Value: value})
		return
	}
	msg.Headers[i].Value = value
	rest := slices.DeleteFunc(msg.Headers[i+1:], func(f HeaderField) bool { return f.Name == name2 })
	msg.Headers = msg.Headers[:i+1+len(rest)]
}

// RemoveHeader removes every header with the given name.
func (msg *Message) RemoveHeader(name string) {
	name2 := header.CanonicName(name)
	msg.Headers = slices.DeleteFunc(msg.Headers, func(f HeaderField) bool { return f.Name == name2 })
}

// CallID returns the Call-ID header value.
func (msg *Message) CallID() string {
	v, _ := msg.Header("Call-ID")
	return strings.TrimSpace(v)
}

// CSeq returns the CSeq header in the normalized "<num> <METHOD>" form.
// An unparsable value is returned trimmed.
func (msg *Message) CSeq() string {
	v, _ := msg.Header("CSeq")
	if cseq, err := header.ParseCSeq(v); err == nil {
		return cseq.String()
	}
	return strings.TrimSpace(v)
}

// FromTag returns the tag parameter of the From header.
func (msg *Message) FromTag() string {
	v, _ := msg.Header("From")
	addr, err := header.ParseNameAddr(v)
	if err != nil {
		return ""
	}
	return addr.Tag()
}

// To returns the To header reduced to the canonical URI and the tag parameter,
// so the display name and parameter order do not matter.
// A value with a non-SIP URI is returned trimmed.
func (msg *Message) To() string {
	v, _ := msg.Header("To")
	addr, err := header.ParseNameAddr(v)
	if err != nil {
		return strings.TrimSpace(v)
	}
	s := addr.URI.RenderURI()
	if tag := addr.Tag(); tag != "" {
		s += ";tag=" + tag
	}
	return s
}

// RequestURI returns the request target. It is empty for responses.
func (msg *Message) RequestURI() string { return msg.RURI }

// Via returns every Via hop of the message, topmost first.
func (msg *Message) Via() (header.Via, error) {
	var via header.Via
	for _, v := range msg.HeaderValues("Via") {
		hops, err := header.ParseVia(v)
		if err != nil {
			return nil, errtrace.Wrap(newInvalidMessageErr(err))
		}
		via = append(via, hops...)
	}
	return via, nil
}

// ViaBranches returns the branch parameter of every Via hop, topmost first.
// Hops that fail to parse contribute an empty string, so hop positions are kept.
func (msg *Message) ViaBranches() []string {
	var branches []string
	for _, v := range msg.HeaderValues("Via") {
		for _, hop := range stringutils.SplitOutsideQuotes(v, ',') {
			if strings.TrimSpace(hop) == "" {
				continue
			}
			h, err := header.ParseViaHop(hop)
			if err != nil {
				branches = append(branches, "")
				continue
			}
			branches = append(branches, h.Branch())
		}
	}
	return branches
}

// PrependVia adds hop as the topmost Via.
func (msg *Message) PrependVia(hop header.ViaHop) {
	msg.PrependHeader("Via", hop.String())
}

// Contacts returns every Contact entry of the message.
// It returns [ErrHeaderNotFound] if there is no Contact header.
func (msg *Message) Contacts() (header.Contact, error) {
	vals := msg.HeaderValues("Contact")
	if len(vals) == 0 {
		return nil, errtrace.Wrap(ErrHeaderNotFound)
	}
	var cnt header.Contact
	for _, v := range vals {
		hdr, err := header.ParseContact(v)
		if err != nil {
			return nil, errtrace.Wrap(newInvalidMessageErr(err))
		}
		if hdr.IsWildcard() {
			return hdr, nil
		}
		cnt = append(cnt, hdr...)
	}
	return cnt, nil
}

// RenderTo writes the message in the RFC 3261 form.
func (msg *Message) RenderTo(w io.Writer) error {
	if _, err := fmt.Fprint(w, msg.StartLine(), "\r\n"); err != nil {
		return errtrace.Wrap(err)
	}
	for _, f := range msg.Headers {
		if _, err := fmt.Fprint(w, f.Name, ": ", f.Value, "\r\n"); err != nil {
			return errtrace.Wrap(err)
		}
	}
	if _, err := fmt.Fprint(w, "\r\n"); err != nil {
		return errtrace.Wrap(err)
	}
	if _, err := w.Write(msg.Body); err != nil {
		return errtrace.Wrap(err)
	}
	return nil
}

func (msg *Message) Render() string {
	if msg == nil {
		return ""
	}
	sb := stringutils.NewStrBldr()
	defer stringutils.FreeStrBldr(sb)
	_ = msg.RenderTo(sb)
	return sb.String()
}

func (msg *Message) String() string {
	if msg == nil {
		return "<nil>"
	}
	return msg.StartLine()
}

func (msg *Message) Clone() *Message {
	if msg == nil {
		return nil
	}
	msg2 := *msg
	msg2.Headers = slices.Clone(msg.Headers)
	msg2.Body = slices.Clone(msg.Body)
	return &msg2
}

// LogValue implements [slog.LogValuer].
func (msg *Message) LogValue() slog.Value {
	if msg == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.String("start_line", msg.StartLine()),
		slog.String("call_id", msg.CallID()),
		slog.String("cseq", msg.CSeq()),
	)
}
