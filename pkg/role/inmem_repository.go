package role

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemoryRoleRepository implements Repository using in-memory storage
type InMemoryRoleRepository struct {
	mu        sync.RWMutex
	roles     map[uuid.UUID]Role
	userRoles map[string][]uuid.UUID // username -> []roleID
}

// NewInMemoryRoleRepository creates a new in-memory role repository
func NewInMemoryRoleRepository() *InMemoryRoleRepository {
	return &InMemoryRoleRepository{
		roles:     make(map[uuid.UUID]Role),
		userRoles: make(map[string][]uuid.UUID),
	}
}

// FindRoles returns all roles
func (r *InMemoryRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roles := make([]Role, 0, len(r.roles))
	for _, role := range r.roles {
		roles = append(roles, role)
	}
	return roles, nil
}

// CreateRole creates a new role
func (r *InMemoryRoleRepository) CreateRole(ctx context.Context, name string) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New()
	r.roles[id] = Role{ID: id, Name: name}
	return id, nil
}

// FindRolesByUsername returns the roles assigned to a username
func (r *InMemoryRoleRepository) FindRolesByUsername(ctx context.Context, username string) ([]Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roleIDs := r.userRoles[username]
	roles := make([]Role, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		if role, ok := r.roles[roleID]; ok {
			roles = append(roles, role)
		}
	}
	return roles, nil
}

// AssignRole assigns a role to a username
func (r *InMemoryRoleRepository) AssignRole(ctx context.Context, username string, roleID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roles[roleID]; !ok {
		return ErrRoleNotFound
	}

	for _, assigned := range r.userRoles[username] {
		if assigned == roleID {
			return nil // Already assigned
		}
	}
	r.userRoles[username] = append(r.userRoles[username], roleID)
	return nil
}
