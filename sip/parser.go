package sip

import (
	"bytes"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/peterpangl/sipxecs/internal/errorutil"
	"github.com/peterpangl/sipxecs/sip/header"
	"github.com/peterpangl/sipxecs/sip/internal/grammar"
)

// ParseMessage parses a request or a response.
// Lines may end with CRLF or a bare LF, and folded header lines are joined with a single space.
// Requests must carry Via, Call-ID, CSeq, From and To headers.
func ParseMessage(data []byte) (*Message, error) {
	head, body := splitHeadBody(data)
	lines := strings.Split(string(head), "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, errtrace.Wrap(newInvalidMessageErr("empty message"))
	}

	msg, err := parseStartLine(lines[0])
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if len(msg.Headers) == 0 {
				return nil, errtrace.Wrap(newInvalidMessageErr("continuation line before first header"))
			}
			f := &msg.Headers[len(msg.Headers)-1]
			f.Value = strings.TrimSpace(f.Value + " " + strings.TrimSpace(line))
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !ok || !grammar.IsToken(name) {
			return nil, errtrace.Wrap(newInvalidMessageErr("invalid header line %q", line))
		}
		msg.AppendHeader(name, strings.TrimSpace(value))
	}

	if err := msg.validate(); err != nil {
		return nil, errtrace.Wrap(err)
	}

	if v, ok := msg.Header("Content-Length"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return nil, errtrace.Wrap(newInvalidMessageErr("invalid Content-Length %q", v))
		}
		if n > len(body) {
			return nil, errtrace.Wrap(newInvalidMessageErr("body is shorter than Content-Length %d", n))
		}
		body = body[:n]
	}
	if len(body) > 0 {
		msg.Body = bytes.Clone(body)
	}
	return msg, nil
}

func splitHeadBody(data []byte) (head, body []byte) {
	crlf := bytes.Index(data, []byte("\r\n\r\n"))
	lf := bytes.Index(data, []byte("\n\n"))
	switch {
	case crlf >= 0 && (lf < 0 || crlf < lf):
		return data[:crlf], data[crlf+4:]
	case lf >= 0:
		return data[:lf], data[lf+2:]
	default:
		return data, nil
	}
}

func parseStartLine(line string) (*Message, error) {
	if strings.HasPrefix(line, "SIP/") {
		proto, rest, _ := strings.Cut(line, " ")
		codeStr, reason, _ := strings.Cut(rest, " ")
		code, err := strconv.Atoi(codeStr)
		if err != nil || code < 100 || code > 699 {
			return nil, errtrace.Wrap(newInvalidMessageErr("invalid status line %q", line))
		}
		return &Message{Proto: proto, StatusCode: code, Reason: reason}, nil
	}

	parts := strings.Split(line, " ")
	if len(parts) != 3 || !grammar.IsToken(parts[0]) || parts[1] == "" || !strings.HasPrefix(parts[2], "SIP/") {
		return nil, errtrace.Wrap(newInvalidMessageErr("invalid request line %q", line))
	}
	return &Message{Method: parts[0], RURI: parts[1], Proto: parts[2]}, nil
}

var mandatoryReqHdrs = []header.Name{"Via", "Call-ID", "CSeq", "From", "To"}

func (msg *Message) validate() error {
	if msg.IsRequest() {
		var missing []string
		for _, name := range mandatoryReqHdrs {
			if _, ok := msg.Header(string(name)); !ok {
				missing = append(missing, string(name))
			}
		}
		if len(missing) > 0 {
			return errtrace.Wrap(newInvalidMessageErr(errorutil.NewWrapperError(errMissHdrs, strings.Join(missing, ", "))))
		}
	}
	var errs []error
	if _, err := msg.Via(); err != nil {
		errs = append(errs, err)
	}
	if v, ok := msg.Header("CSeq"); ok {
		if _, err := header.ParseCSeq(v); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errorutil.JoinPrefix("invalid headers", errs...); err != nil {
		return errtrace.Wrap(newInvalidMessageErr(err))
	}
	return nil
}
