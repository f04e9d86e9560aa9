package types

import (
	"iter"
	"slices"
	"sync"
)

// Hooks is an ordered set of callbacks. Each one can be removed on its own.
// It is safe for concurrent use; the zero value is ready to use.
type Hooks[T any] struct {
	mu    sync.RWMutex
	next  uint64
	hooks []hook[T]
}

type hook[T any] struct {
	id uint64
	fn T
}

// Len returns the number of registered callbacks.
func (h *Hooks[T]) Len() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.hooks)
}

// Add registers fn after the already registered callbacks.
// Calling remove more than once has no effect.
func (h *Hooks[T]) Add(fn T) (remove func()) {
	h.mu.Lock()
	id := h.next
	h.next++
	h.hooks = append(h.hooks, hook[T]{id, fn})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.hooks = slices.DeleteFunc(h.hooks, func(e hook[T]) bool { return e.id == id })
		})
	}
}

// All yields a snapshot of the callbacks in registration order.
// Callbacks may add or remove hooks while being iterated.
func (h *Hooks[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if h == nil {
			return
		}
		h.mu.RLock()
		fns := make([]T, len(h.hooks))
		for i, e := range h.hooks {
			fns[i] = e.fn
		}
		h.mu.RUnlock()

		for _, fn := range fns {
			if !yield(fn) {
				return
			}
		}
	}
}
