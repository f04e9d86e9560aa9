package branch

import (
	"context"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/peterpangl/sipxecs/internal/errorutil"
)

type forkState string

const (
	forkStateRecording forkState = "recording"
	forkStateSealed    forkState = "sealed"
)

const (
	forkEvtAdd  = "add_fork"
	forkEvtSeal = "seal"
)

// ServerID is the branch id of a server transaction.
// Forks are recorded on it until the first child branch is derived with [Generator.FromParent].
//
// AddFork calls must be serialized by the owner of the transaction.
// The read accessors are safe for concurrent use.
type ServerID struct {
	raw   string
	token Token
	sipx  bool

	secrets *SecretStore
	log     *slog.Logger
	fsm     *stateless.StateMachine

	mu      sync.Mutex
	forks   forkSet
	loopKey string
	text    string
	dirty   bool
}

func newServerID(value string, secrets *SecretStore, log *slog.Logger) *ServerID {
	id := &ServerID{
		raw:     value,
		text:    value,
		secrets: secrets,
		log:     log,
	}
	if tok, ok := ParseToken(value); ok {
		id.token, id.sipx = tok, true
		id.loopKey = tok.LoopKey
	}
	id.initFSM()
	return id
}

func (id *ServerID) initFSM() {
	id.fsm = stateless.NewStateMachine(forkStateRecording)
	id.fsm.SetTriggerParameters(forkEvtAdd, reflect.TypeOf(""))

	id.fsm.Configure(forkStateRecording).
		InternalTransition(forkEvtAdd, id.actAddFork).
		Permit(forkEvtSeal, forkStateSealed)

	id.fsm.Configure(forkStateSealed).
		OnEntry(id.actSealed).
		Ignore(forkEvtSeal)

	id.fsm.OnUnhandledTrigger(func(_ context.Context, state stateless.State, _ stateless.Trigger, _ []string) error {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrForksSealed, "fork state %v", state))
	})
}

// AddFork records a destination the request is forked to.
// Recording the same address-of-record twice has no effect.
// After a child branch was derived it returns [ErrForksSealed] and leaves the fork set unchanged.
func (id *ServerID) AddFork(target ForkTarget) error {
	if target == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("nil fork target"))
	}
	aor := target.AddrOfRecord()
	if aor == "" || strings.Contains(aor, forkSep) {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid address-of-record %q", aor))
	}
	return errtrace.Wrap(id.fsm.Fire(forkEvtAdd, aor))
}

func (id *ServerID) actAddFork(ctx context.Context, args ...any) error {
	aor := args[0].(string) //nolint:forcetypeassert

	id.mu.Lock()
	added := id.forks.record(aor)
	if added {
		id.dirty = true
	}
	id.mu.Unlock()

	id.log.LogAttrs(ctx, slog.LevelDebug, "fork recorded",
		slog.String("branch", id.raw),
		slog.String("aor", aor),
		slog.Bool("duplicate", !added),
	)
	return nil
}

func (id *ServerID) actSealed(ctx context.Context, _ ...any) error {
	id.log.LogAttrs(ctx, slog.LevelDebug, "fork recording sealed", slog.String("branch", id.raw))
	return nil
}

func (id *ServerID) seal() {
	if err := id.fsm.Fire(forkEvtSeal); err != nil {
		id.log.LogAttrs(context.Background(), slog.LevelWarn, "failed to seal fork recording",
			slog.String("branch", id.raw),
			slog.Any("error", err),
		)
	}
}

// Sealed reports whether fork recording is closed.
func (id *ServerID) Sealed() bool {
	return id.fsm.MustState() == forkStateSealed
}

// materialize recomputes the loop key and the wire text after forks were recorded.
// The caller must hold id.mu.
func (id *ServerID) materialize() {
	if !id.dirty {
		return
	}
	secret, ok := id.secrets.get()
	if !ok {
		panic(errorutil.NewWrapperError(ErrSecretNotSet, "materialize loop key"))
	}
	id.loopKey = signLoopKey(secret, id.forks.seed())
	if id.sipx {
		id.text = Token{Counter: id.token.Counter, Unique: id.token.Unique, LoopKey: id.loopKey}.String()
	}
	id.dirty = false
}

// String returns the wire text. A recognized inbound value that got forks carries
// the new loop key; an opaque value is returned verbatim.
// It panics with [ErrSecretNotSet] if forks must be signed and no secret is installed.
func (id *ServerID) String() string {
	if id == nil {
		return ""
	}
	id.mu.Lock()
	defer id.mu.Unlock()
	id.materialize()
	return id.text
}

// LoopKey returns the loop key derived from the recorded forks,
// or the one received with the inbound value if no fork was recorded.
func (id *ServerID) LoopKey() string {
	if id == nil {
		return ""
	}
	id.mu.Lock()
	defer id.mu.Unlock()
	id.materialize()
	return id.loopKey
}

// Raw returns the inbound value the id was built from.
func (id *ServerID) Raw() string { return id.raw }

// Token returns the parsed inbound value and whether it was recognized.
func (id *ServerID) Token() (Token, bool) { return id.token, id.sipx }

// Forks returns the recorded addresses-of-record in lexical order.
func (id *ServerID) Forks() []string {
	id.mu.Lock()
	defer id.mu.Unlock()
	return id.forks.list()
}

// IsRFC3261 reports whether the inbound value starts with the RFC 3261 magic cookie.
func (id *ServerID) IsRFC3261() bool { return IsRFC3261(id.raw) }

// IsSipX reports whether the inbound value was recognized as issued by this package.
func (id *ServerID) IsSipX() bool { return id.sipx }

// Equal compares the wire text with a [ClientID] or [*ServerID].
func (id *ServerID) Equal(val any) bool {
	if id == nil {
		other, ok := val.(*ServerID)
		return ok && other == nil
	}
	s, ok := idText(val)
	return ok && s == id.String()
}

// LoopDetected returns the 1-based index of the first Via hop of msg that closes a loop
// through this transaction, or 0. All forks must be recorded before calling it.
func (id *ServerID) LoopDetected(msg ViaChain) int {
	id.mu.Lock()
	id.materialize()
	loopKey := id.loopKey
	id.mu.Unlock()

	raw := ""
	if !id.sipx {
		raw = id.raw
	}
	return detectLoop(msg.ViaBranches(), loopKey, raw)
}

// LogValue implements [slog.LogValuer].
func (id *ServerID) LogValue() slog.Value {
	if id == nil {
		return slog.Value{}
	}
	sealed := id.Sealed()
	id.mu.Lock()
	defer id.mu.Unlock()
	return slog.GroupValue(
		slog.String("value", id.raw),
		slog.Bool("sipx", id.sipx),
		slog.Int("forks", id.forks.len()),
		slog.Bool("sealed", sealed),
	)
}
