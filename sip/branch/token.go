package branch

import (
	"encoding/base64"
	"log/slog"
	"strconv"
	"strings"

	"github.com/peterpangl/sipxecs/internal/stringutils"
)

const (
	// RFC3261MagicCookie starts every branch compliant with RFC 3261 Section 8.1.1.7.
	RFC3261MagicCookie = "z9hG4bK"
	// MagicCookie starts every branch issued by this package.
	MagicCookie = RFC3261MagicCookie + "-XX-"

	uniqueSep  = '~'
	loopKeySep = '`'

	minCounterLen = 4
	maxCounterLen = 16

	digestLen  = 16
	macLen     = 16
	loopKeyLen = 16
)

var (
	b64 = base64.RawURLEncoding.Strict()

	uniqueTextLen  = b64.EncodedLen(digestLen + macLen)
	loopKeyTextLen = b64.EncodedLen(loopKeyLen)
)

// Token is the structured form of a branch issued by this package:
//
//	z9hG4bK-XX-<counter>~<unique>[`<loop key>]
//
// The counter is lower-case hex zero-padded to four digits, the unique part and
// the loop key are unpadded base64url.
type Token struct {
	Counter uint64
	Unique  string
	LoopKey string
}

// String encodes the token. It never fails.
func (t Token) String() string {
	sb := stringutils.NewStrBldr()
	defer stringutils.FreeStrBldr(sb)

	sb.WriteString(MagicCookie)
	sb.WriteString(formatCounter(t.Counter))
	sb.WriteByte(uniqueSep)
	sb.WriteString(t.Unique)
	if t.LoopKey != "" {
		sb.WriteByte(loopKeySep)
		sb.WriteString(t.LoopKey)
	}
	return sb.String()
}

func (t Token) IsZero() bool { return t.Counter == 0 && t.Unique == "" && t.LoopKey == "" }

// LogValue implements [slog.LogValuer].
func (t Token) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Uint64("counter", t.Counter),
		slog.String("unique", t.Unique),
	}
	if t.LoopKey != "" {
		attrs = append(attrs, slog.String("loop_key", t.LoopKey))
	}
	return slog.GroupValue(attrs...)
}

func formatCounter(n uint64) string {
	s := strconv.FormatUint(n, 16)
	if len(s) < minCounterLen {
		s = strings.Repeat("0", minCounterLen-len(s)) + s
	}
	return s
}

// ParseToken recognizes a branch issued by this package.
// The check is purely syntactic: the signature is not verified, so tokens issued by
// any instance, whatever its secret, are recognized.
func ParseToken(s string) (Token, bool) {
	rest, ok := strings.CutPrefix(s, MagicCookie)
	if !ok {
		return Token{}, false
	}
	cntStr, rest, ok := strings.Cut(rest, string(uniqueSep))
	if !ok {
		return Token{}, false
	}
	cnt, ok := parseCounter(cntStr)
	if !ok {
		return Token{}, false
	}
	unique, loopKey, hasLoopKey := strings.Cut(rest, string(loopKeySep))
	if !isB64(unique, uniqueTextLen) {
		return Token{}, false
	}
	if hasLoopKey && !isB64(loopKey, loopKeyTextLen) {
		return Token{}, false
	}
	return Token{Counter: cnt, Unique: unique, LoopKey: loopKey}, true
}

// parseCounter accepts only the canonical form produced by formatCounter,
// so a recognized token always re-encodes to the same text.
func parseCounter(s string) (uint64, bool) {
	if len(s) < minCounterLen || len(s) > maxCounterLen {
		return 0, false
	}
	if len(s) > minCounterLen && s[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isB64(s string, n int) bool {
	if len(s) != n {
		return false
	}
	_, err := b64.DecodeString(s)
	return err == nil
}

// IsRFC3261 reports whether s starts with the RFC 3261 magic cookie.
// It does not need the secret.
func IsRFC3261(s string) bool { return strings.HasPrefix(s, RFC3261MagicCookie) }

// IsSipX reports whether s is shaped like a branch issued by this package.
func IsSipX(s string) bool {
	_, ok := ParseToken(s)
	return ok
}
