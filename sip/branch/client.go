package branch

import "log/slog"

// ClientID is the branch id of a client transaction.
// It is an immutable value; forks are never recorded on it.
type ClientID struct {
	token Token
	text  string
}

func newClientID(secret []byte, msg Message, cnt uint64, loopKey string) ClientID {
	dgst := digest(uniqueSeed(msg, cnt))
	tok := Token{
		Counter: cnt,
		Unique:  signUnique(secret, cnt, dgst, loopKey),
		LoopKey: loopKey,
	}
	return ClientID{token: tok, text: tok.String()}
}

// String returns the wire text to put in the Via branch parameter.
func (id ClientID) String() string { return id.text }

func (id ClientID) Token() Token { return id.token }

func (id ClientID) LoopKey() string { return id.token.LoopKey }

func (id ClientID) IsZero() bool { return id.text == "" }

// IsRFC3261 is true for every non-zero client branch id.
func (id ClientID) IsRFC3261() bool { return IsRFC3261(id.text) }

// Equal compares the wire text with a [ClientID] or [*ServerID].
func (id ClientID) Equal(val any) bool {
	s, ok := idText(val)
	return ok && s == id.text
}

// LoopDetected returns the 1-based index of the first Via hop of msg that carries
// the same loop key as id, or 0 if there is none or id has no loop key.
func (id ClientID) LoopDetected(msg ViaChain) int {
	return detectLoop(msg.ViaBranches(), id.token.LoopKey, "")
}

// LogValue implements [slog.LogValuer].
func (id ClientID) LogValue() slog.Value {
	if id.IsZero() {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.String("value", id.text),
		slog.Any("token", id.token),
	)
}
