package registry

import "sync"

// Registry holds the currently published State behind a single guarded
// pointer. Readers always see one complete reload cycle's output; a
// reload in progress never leaks partial data.
type Registry struct {
	mu    sync.RWMutex
	state *State
}

// NewRegistry returns a registry holding an empty state, so handlers
// have something coherent to serve before the first reload finishes.
func NewRegistry() *Registry {
	return &Registry{state: emptyState()}
}

// Snapshot returns the current state. The returned State is immutable.
func (r *Registry) Snapshot() *State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Publish swaps the current state wholesale.
func (r *Registry) Publish(state *State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state
}
