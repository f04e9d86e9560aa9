package header

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/peterpangl/sipxecs/internal/stringutils"
	"github.com/peterpangl/sipxecs/sip/internal/grammar"
)

type CSeq struct {
	SeqNum uint
	Method string
}

func (CSeq) CanonicName() Name { return "CSeq" }

// String renders the normalized "<seq> <METHOD>" form.
func (hdr CSeq) String() string {
	return strconv.FormatUint(uint64(hdr.SeqNum), 10) + " " + hdr.Method
}

func (hdr CSeq) Equal(other CSeq) bool {
	return hdr.SeqNum == other.SeqNum && hdr.Method == other.Method
}

// ParseCSeq parses a CSeq header value. The method is upper-cased and the
// separating white space is collapsed.
func ParseCSeq(s string) (CSeq, error) {
	fs := strings.Fields(s)
	if len(fs) == 0 {
		return CSeq{}, errtrace.Wrap(ErrEmptyInput)
	}
	if len(fs) != 2 {
		return CSeq{}, errtrace.Wrap(newMalformedInputErr("invalid CSeq %q", s))
	}
	num, err := strconv.ParseUint(fs[0], 10, 32)
	if err != nil {
		return CSeq{}, errtrace.Wrap(newMalformedInputErr(err))
	}
	if !grammar.IsToken(fs[1]) {
		return CSeq{}, errtrace.Wrap(newMalformedInputErr("invalid CSeq method %q", fs[1]))
	}
	return CSeq{SeqNum: uint(num), Method: stringutils.UCase(fs[1])}, nil
}
