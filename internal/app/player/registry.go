package player

import "sync"

// Teardown is implemented by players that hold resources
type Teardown interface {
	Destroy() error
}

// Registry tracks live players by element id
type Registry struct {
	mu      sync.RWMutex
	players map[string]Player
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{players: make(map[string]Player)}
}

// Put stores p under key and returns the player it replaced, if any
func (r *Registry) Put(key string, p Player) Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.players[key]
	r.players[key] = p
	return prev
}

// Get returns the player stored under key
func (r *Registry) Get(key string) (Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[key]
	return p, ok
}

// Destroy removes key and tears its player down when it supports it. The
// entry is removed even when teardown fails.
func (r *Registry) Destroy(key string) (bool, error) {
	r.mu.Lock()
	p, ok := r.players[key]
	delete(r.players, key)
	r.mu.Unlock()

	if !ok {
		return false, nil
	}
	if t, isTeardown := p.(Teardown); isTeardown && t != nil {
		return true, t.Destroy()
	}
	return true, nil
}

// Len returns the number of live players
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}
