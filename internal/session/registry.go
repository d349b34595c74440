package session

import (
	"sync"

	"github.com/coder/quartz"
)

// Registry hands out one Session per key (a channel, a connection).
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	settings Settings
	clock    quartz.Clock
}

// NewRegistry creates an empty registry whose sessions use settings.
func NewRegistry(settings Settings, clock quartz.Clock) *Registry {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		settings: settings,
		clock:    clock,
	}
}

// Get returns the session for key, creating it on first use.
func (r *Registry) Get(key string) *Session {
	r.mu.RLock()
	s, ok := r.sessions[key]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[key]; ok {
		return s
	}
	s = New(key, r.settings, WithClock(r.clock))
	r.sessions[key] = s
	return s
}

// Lookup returns the session for key if one exists.
func (r *Registry) Lookup(key string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[key]
	return s, ok
}

// Remove forgets the session for key.
func (r *Registry) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, key)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Settings returns the settings used for new sessions.
func (r *Registry) Settings() Settings {
	return r.settings
}
