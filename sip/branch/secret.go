package branch

import (
	"bytes"
	"sync/atomic"
)

// SecretStore holds the key that signs branch ids.
// It is written rarely (at startup and on configuration reload) and read on every
// signing and verification, so reads are lock-free.
//
// Replacing the secret makes every previously issued branch id unverifiable.
type SecretStore struct {
	secret atomic.Pointer[[]byte]
}

// NewSecretStore returns a store holding a copy of secret.
// An empty secret leaves the store unset.
func NewSecretStore(secret []byte) *SecretStore {
	s := new(SecretStore)
	s.Set(secret)
	return s
}

// Set replaces the secret with a copy of secret. An empty secret unsets the store.
func (s *SecretStore) Set(secret []byte) {
	if len(secret) == 0 {
		s.secret.Store(nil)
		return
	}
	b := bytes.Clone(secret)
	s.secret.Store(&b)
}

// IsSet reports whether a non-empty secret is installed.
func (s *SecretStore) IsSet() bool { return s.secret.Load() != nil }

func (s *SecretStore) get() ([]byte, bool) {
	p := s.secret.Load()
	if p == nil {
		return nil, false
	}
	return *p, true
}

var defSecrets = new(SecretStore)

// DefaultSecretStore returns the process-wide store used by [DefaultGenerator].
func DefaultSecretStore() *SecretStore { return defSecrets }

// SetSecret installs secret into the process-wide store.
// It must be called before the first server branch id is built, otherwise
// ids built earlier are never recognized as self-issued.
func SetSecret(secret []byte) { defSecrets.Set(secret) }
