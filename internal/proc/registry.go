package proc

import "sync"

// Registry tracks live handles so an interrupt can stop them all, even
// when the component that started a handle has already returned control.
type Registry struct {
	mu      sync.Mutex
	handles map[*Handle]struct{}
}

// DefaultRegistry is the process-wide registry every Start registers with.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[*Handle]struct{})}
}

func (r *Registry) add(h *Handle) {
	r.mu.Lock()
	r.handles[h] = struct{}{}
	r.mu.Unlock()
}

func (r *Registry) remove(h *Handle) {
	r.mu.Lock()
	delete(r.handles, h)
	r.mu.Unlock()
}

// Live returns the number of currently registered handles.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// StopAll stops every registered handle. Safe to call more than once and
// concurrently with individual Stop calls.
func (r *Registry) StopAll() {
	r.mu.Lock()
	live := make([]*Handle, 0, len(r.handles))
	for h := range r.handles {
		live = append(live, h)
	}
	r.mu.Unlock()

	for _, h := range live {
		_ = h.Stop()
	}
}
