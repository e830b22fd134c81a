// internal/store/container.go
// Shared state container used by every domain store.

package store

import (
	"sync"

	"github.com/google/uuid"
)

// Listener receives the new state snapshot after each committed mutation.
type Listener[S any] func(S)

// Container holds one domain's state as an immutable snapshot that is
// replaced wholesale on every mutation. Mutations are serialized, so each
// mutate function sees the latest committed state and no two mutations
// interleave. Listeners are invoked synchronously after the mutation
// commits, in commit order. A listener must not dispatch back into the
// same container.
type Container[S any] struct {
	dispatchMu sync.Mutex // serializes Update + notify so listeners see commit order

	mu        sync.RWMutex
	state     S
	listeners map[string]Listener[S]
}

// New creates a container seeded with the initial state.
func New[S any](initial S) *Container[S] {
	return &Container[S]{
		state:     initial,
		listeners: make(map[string]Listener[S]),
	}
}

// Snapshot returns the last committed state. Domain stores build fresh
// slices and maps inside their mutations, so a snapshot stays valid after
// later mutations commit.
func (c *Container[S]) Snapshot() S {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Subscribe registers a listener and returns a function that removes it.
// A removed listener does not fire for mutations committed after the
// returned function runs.
func (c *Container[S]) Subscribe(fn Listener[S]) func() {
	id := uuid.NewString()

	c.mu.Lock()
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Update applies mutate to the current state, commits the returned value as
// the new snapshot and notifies listeners. The mutate function must treat
// its argument as read-only and return a fresh value for anything it
// changes.
func (c *Container[S]) Update(mutate func(S) S) {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.mu.Lock()
	c.state = mutate(c.state)
	next := c.state
	notify := make([]Listener[S], 0, len(c.listeners))
	for _, fn := range c.listeners {
		notify = append(notify, fn)
	}
	c.mu.Unlock()

	for _, fn := range notify {
		fn(next)
	}
}
