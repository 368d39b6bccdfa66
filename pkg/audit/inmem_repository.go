package audit

import (
	"context"
	"sync"
)

// InMemoryAuditRepository implements Repository using in-memory storage
type InMemoryAuditRepository struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewInMemoryAuditRepository creates a new in-memory audit repository
func NewInMemoryAuditRepository() *InMemoryAuditRepository {
	return &InMemoryAuditRepository{}
}

// Create appends an audit entry
func (r *InMemoryAuditRepository) Create(ctx context.Context, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	return nil
}

// FindByPrincipal returns entries recorded for a principal, oldest first
func (r *InMemoryAuditRepository) FindByPrincipal(ctx context.Context, principal string) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []Entry
	for _, entry := range r.entries {
		if entry.Principal == principal {
			found = append(found, entry)
		}
	}
	return found, nil
}

// Entries returns a copy of every recorded entry, oldest first
func (r *InMemoryAuditRepository) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return entries
}
