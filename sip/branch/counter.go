package branch

import "sync/atomic"

// Counter issues the sequence numbers mixed into every new branch id.
// Each call to [Counter.Next] returns a distinct value; order across goroutines is not guaranteed.
// It wraps around at the uint64 limit.
type Counter struct {
	n atomic.Uint64
}

// NewCounter returns a counter whose first issued value is start+1.
func NewCounter(start uint64) *Counter {
	c := new(Counter)
	c.n.Store(start)
	return c
}

func (c *Counter) Next() uint64 { return c.n.Add(1) }

var defCounter = new(Counter)

// DefaultCounter returns the process-wide counter used by [DefaultGenerator].
func DefaultCounter() *Counter { return defCounter }
