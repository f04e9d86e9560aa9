package branch

import (
	"slices"
	"strings"
)

const forkSep = "\n"

// forkSet is the ordered, duplicate-free set of fork target addresses-of-record.
// The order makes the loop key a function of the set only, not of the recording order.
type forkSet struct {
	aors []string
}

// record inserts aor and reports whether it was not in the set yet.
func (fs *forkSet) record(aor string) bool {
	i, found := slices.BinarySearch(fs.aors, aor)
	if found {
		return false
	}
	fs.aors = slices.Insert(fs.aors, i, aor)
	return true
}

func (fs *forkSet) len() int { return len(fs.aors) }

func (fs *forkSet) list() []string { return slices.Clone(fs.aors) }

// seed serializes the set for signing.
func (fs *forkSet) seed() []byte { return []byte(strings.Join(fs.aors, forkSep)) }
