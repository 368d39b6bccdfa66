package session

import (
	"sync"

	"github.com/google/uuid"
)

// Store keeps live session contexts keyed by session ID.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Context
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Context),
	}
}

// Create allocates a new session context and registers it.
func (s *Store) Create() *Context {
	sess := NewContext()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.id] = sess
	return sess
}

// Get returns the session for id, or nil when unknown or invalidated.
// Invalidated sessions are removed on lookup.
func (s *Store) Get(id uuid.UUID) *Context {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if sess.Invalidated() {
		s.Remove(id)
		return nil
	}
	return sess
}

// Rotate moves a session's state onto a fresh ID and invalidates the old
// context. Called when a session gains privileges, such as on login, so a
// token planted before authentication never names the authenticated session.
func (s *Store) Rotate(old *Context) *Context {
	fresh := NewContext()

	old.mu.Lock()
	oldID := old.id
	fresh.username = old.username
	fresh.roles = old.roles
	fresh.ip = old.ip
	fresh.csrfToken = old.csrfToken
	old.username = ""
	old.roles = nil
	old.csrfToken = ""
	old.invalidated = true
	old.mu.Unlock()

	s.mu.Lock()
	delete(s.sessions, oldID)
	s.sessions[fresh.id] = fresh
	s.mu.Unlock()
	return fresh
}

// Remove drops the session for id.
func (s *Store) Remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
