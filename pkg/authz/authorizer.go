package authz

import (
	"context"
	"sync"

	"github.com/tendant/simple-vault/pkg/user"
)

// Authorizer answers whether a user holds permission for a named function or
// key. A nil user means an anonymous/no-user check; implementations must
// still answer rather than reject the call.
type Authorizer interface {
	IsAuthorized(ctx context.Context, u *user.User, key string) bool
}

// RoleAuthorizer grants keys per role name, with an optional public grant
// set that applies to everyone including anonymous callers. The user's
// session roles drive the decision.
type RoleAuthorizer struct {
	mu     sync.RWMutex
	grants map[string]map[string]bool // role name -> key -> granted
	public map[string]bool
}

// NewRoleAuthorizer creates an empty role-based authorizer.
func NewRoleAuthorizer() *RoleAuthorizer {
	return &RoleAuthorizer{
		grants: make(map[string]map[string]bool),
		public: make(map[string]bool),
	}
}

// Grant allows a role to use the given keys.
func (a *RoleAuthorizer) Grant(roleName string, keys ...string) *RoleAuthorizer {
	a.mu.Lock()
	defer a.mu.Unlock()

	granted := a.grants[roleName]
	if granted == nil {
		granted = make(map[string]bool)
		a.grants[roleName] = granted
	}
	for _, key := range keys {
		granted[key] = true
	}
	return a
}

// GrantPublic allows everyone, including anonymous callers, the given keys.
func (a *RoleAuthorizer) GrantPublic(keys ...string) *RoleAuthorizer {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, key := range keys {
		a.public[key] = true
	}
	return a
}

func (a *RoleAuthorizer) IsAuthorized(ctx context.Context, u *user.User, key string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.public[key] {
		return true
	}
	if u == nil {
		return false
	}
	for _, roleName := range u.Roles {
		if a.grants[roleName][key] {
			return true
		}
	}
	return false
}
