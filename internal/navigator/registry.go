package navigator

import (
	"sync"
	"time"
)

// State is the mutable cell behind one interactive message.
type State struct {
	mu      sync.Mutex
	current int
	target  Target
	closed  bool

	deadline time.Time // guarded by Registry.mu
}

func (s *State) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Registry owns every live State, keyed by message id.
type Registry struct {
	mu     sync.Mutex
	states map[string]*State
}

func NewRegistry() *Registry {
	return &Registry{states: map[string]*State{}}
}

func (r *Registry) Put(id string, s *State, deadline time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.deadline = deadline
	r.states[id] = s
}

// Get returns the state for id if it has not passed its deadline.
func (r *Registry) Get(id string, now time.Time) (*State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.states[id]
	if !ok || now.After(s.deadline) {
		return nil, false
	}
	return s, true
}

func (r *Registry) Touch(id string, deadline time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.states[id]; ok {
		s.deadline = deadline
	}
}

func (r *Registry) Remove(id string) (*State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.states[id]
	delete(r.states, id)
	return s, ok
}

// Sweep removes and returns every state past its deadline.
func (r *Registry) Sweep(now time.Time) []*State {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*State
	for id, s := range r.states {
		if now.After(s.deadline) {
			out = append(out, s)
			delete(r.states, id)
		}
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}
