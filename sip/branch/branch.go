// Package branch generates, parses and compares the Via branch parameter values
// issued by the proxy, and uses them to detect requests looping back through forks.
//
// A branch id is built in one of three ways:
//   - [Generator.FromMessage] for a client transaction that starts a new request;
//   - [Generator.FromInbound] for a server transaction, from the branch of the received top Via;
//   - [Generator.FromParent] for a client transaction forked by a proxy from a server transaction.
//
// Only server branch ids record forks. Their loop key, derived from the set of fork targets,
// is inherited by every forked client branch id and travels in the Via of the forwarded request,
// which lets [ServerID.LoopDetected] spot the same fork set coming back.
package branch

//go:generate errtrace -w .
//go:generate go run go.uber.org/mock/mockgen -typed -destination=../../internal/testutil/branchmock/branchmock.go -package=branchmock . Message,ViaChain,ForkTarget

import (
	"context"
	"log/slog"

	"github.com/peterpangl/sipxecs/internal/errorutil"
	"github.com/peterpangl/sipxecs/internal/log"
)

type Error = errorutil.Error

const (
	// ErrSecretNotSet is the panic value when a branch must be signed but no secret is installed.
	ErrSecretNotSet Error = "branch secret not set"
	// ErrForksSealed is returned when a fork is recorded after a child branch was derived.
	ErrForksSealed Error = "fork recording sealed"

	ErrInvalidArgument = errorutil.ErrInvalidArgument
)

// Message exposes the call-identifying fields that seed the unique part of a branch id.
type Message interface {
	CallID() string
	CSeq() string
	FromTag() string
	To() string
	RequestURI() string
}

// ViaChain exposes the branch parameters of the Via hops of a message, topmost first.
type ViaChain interface {
	ViaBranches() []string
}

// ForkTarget is a destination a request is forked to.
type ForkTarget interface {
	// AddrOfRecord returns the canonical address-of-record string of the target.
	AddrOfRecord() string
}

// GeneratorOptions are used to build a [Generator].
type GeneratorOptions struct {
	// Secrets holds the signing key.
	// If nil, the process-wide store from [DefaultSecretStore] is used.
	Secrets *SecretStore
	// Counter issues sequence numbers.
	// If nil, the process-wide counter from [DefaultCounter] is used.
	Counter *Counter
	// Log is the logger.
	// If nil, the [log.Default] is used.
	Log *slog.Logger
}

func (o *GeneratorOptions) secrets() *SecretStore {
	if o == nil || o.Secrets == nil {
		return DefaultSecretStore()
	}
	return o.Secrets
}

func (o *GeneratorOptions) counter() *Counter {
	if o == nil || o.Counter == nil {
		return DefaultCounter()
	}
	return o.Counter
}

func (o *GeneratorOptions) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Default()
	}
	return o.Log
}

// Generator builds branch ids signed with the secret of its store.
// It is safe for concurrent use.
type Generator struct {
	secrets *SecretStore
	counter *Counter
	log     *slog.Logger
}

// NewGenerator creates a generator. Options are optional.
func NewGenerator(opts *GeneratorOptions) *Generator {
	return &Generator{
		secrets: opts.secrets(),
		counter: opts.counter(),
		log:     opts.log(),
	}
}

// DefaultGenerator returns a generator over the process-wide secret store and counter.
func DefaultGenerator() *Generator { return NewGenerator(nil) }

func (g *Generator) mustSecret(op string) []byte {
	secret, ok := g.secrets.get()
	if !ok {
		panic(errorutil.NewWrapperError(ErrSecretNotSet, op))
	}
	return secret
}

// FromMessage builds the branch id of a client transaction that starts a new request.
// It panics with [ErrSecretNotSet] if no secret is installed.
func (g *Generator) FromMessage(msg Message) ClientID {
	secret := g.mustSecret("build client branch")
	id := newClientID(secret, msg, g.counter.Next(), "")
	g.log.LogAttrs(context.Background(), slog.LevelDebug, "client branch built", slog.Any("branch", id))
	return id
}

// FromParent builds the branch id of a client transaction forked from parent.
// The child inherits the loop key of parent, and parent stops accepting forks.
// A nil parent gives the same result as [Generator.FromMessage].
// It panics with [ErrSecretNotSet] if no secret is installed.
func (g *Generator) FromParent(parent *ServerID, msg Message) ClientID {
	secret := g.mustSecret("build forked client branch")
	var loopKey string
	if parent != nil {
		parent.seal()
		loopKey = parent.LoopKey()
	}
	id := newClientID(secret, msg, g.counter.Next(), loopKey)
	g.log.LogAttrs(context.Background(), slog.LevelDebug, "forked client branch built",
		slog.Any("parent", parent),
		slog.Any("branch", id),
	)
	return id
}

// FromInbound builds the branch id of a server transaction from the received branch value.
// A value issued by any instance of this package is recognized and its loop key adopted;
// any other value is kept verbatim and compared as an opaque string.
func (g *Generator) FromInbound(value string) *ServerID {
	if !g.secrets.IsSet() {
		g.log.LogAttrs(context.Background(), slog.LevelWarn,
			"server branch built before the secret is set, its forks will not verify as self-issued",
			slog.String("branch", value),
		)
	}
	id := newServerID(value, g.secrets, g.log)
	g.log.LogAttrs(context.Background(), slog.LevelDebug, "server branch built", slog.Any("branch", id))
	return id
}

// Verify reports whether value is a branch issued under the current secret,
// by this instance or any peer sharing the secret.
// It is false when no secret is installed.
func (g *Generator) Verify(value string) bool {
	tok, ok := ParseToken(value)
	if !ok {
		return false
	}
	secret, ok := g.secrets.get()
	if !ok {
		g.log.LogAttrs(context.Background(), slog.LevelDebug, "branch not verified, secret not set", slog.String("branch", value))
		return false
	}
	return verify(secret, tok)
}

// TopViaIsMine reports whether the topmost Via branch of msg was issued under the current secret.
func (g *Generator) TopViaIsMine(msg ViaChain) bool {
	branches := msg.ViaBranches()
	if len(branches) == 0 {
		return false
	}
	return g.Verify(branches[0])
}

// ID is implemented by [ClientID] and [*ServerID].
type ID interface {
	String() string
	LoopKey() string
	LoopDetected(msg ViaChain) int
}

// Equal compares branch ids by their wire text.
func Equal(id1, id2 ID) bool {
	if id1 == nil || id2 == nil {
		return id1 == id2
	}
	return id1.String() == id2.String()
}

func idText(val any) (string, bool) {
	switch v := val.(type) {
	case ClientID:
		return v.String(), true
	case *ClientID:
		if v == nil {
			return "", false
		}
		return v.String(), true
	case *ServerID:
		if v == nil {
			return "", false
		}
		return v.String(), true
	default:
		return "", false
	}
}
