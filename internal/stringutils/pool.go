package stringutils

import (
	"strings"
	"sync"
)

var strBldrPool = &sync.Pool{
	New: func() any {
		sb := new(strings.Builder)
		sb.Grow(256)
		return sb
	},
}

// NewStrBldr takes a reset [strings.Builder] from the pool.
func NewStrBldr() *strings.Builder {
	return strBldrPool.Get().(*strings.Builder) //nolint:forcetypeassert
}

// FreeStrBldr resets sb and returns it to the pool.
func FreeStrBldr(sb *strings.Builder) {
	sb.Reset()
	strBldrPool.Put(sb)
}
