package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tendant/simple-vault/pkg/user"
)

func TestRoleAuthorizer(t *testing.T) {
	ctx := context.Background()

	authorizer := NewRoleAuthorizer().
		Grant("ADMIN", string(FunctionAddUser), string(FunctionUpdateUser)).
		Grant("USER", string(FunctionAddPassword)).
		GrantPublic("VIEW_REPORT_Users")

	admin := &user.User{Username: "alice", Roles: []string{"ADMIN"}}
	regular := &user.User{Username: "bob", Roles: []string{"USER"}}
	roleless := &user.User{Username: "carol"}

	t.Run("granted role keys", func(t *testing.T) {
		assert.True(t, authorizer.IsAuthorized(ctx, admin, string(FunctionAddUser)))
		assert.True(t, authorizer.IsAuthorized(ctx, regular, string(FunctionAddPassword)))
	})

	t.Run("ungranted keys are denied", func(t *testing.T) {
		assert.False(t, authorizer.IsAuthorized(ctx, regular, string(FunctionAddUser)))
		assert.False(t, authorizer.IsAuthorized(ctx, admin, string(FunctionAddPassword)))
		assert.False(t, authorizer.IsAuthorized(ctx, roleless, string(FunctionAddUser)))
	})

	t.Run("public keys apply to everyone", func(t *testing.T) {
		assert.True(t, authorizer.IsAuthorized(ctx, admin, "VIEW_REPORT_Users"))
		assert.True(t, authorizer.IsAuthorized(ctx, roleless, "VIEW_REPORT_Users"))
		assert.True(t, authorizer.IsAuthorized(ctx, nil, "VIEW_REPORT_Users"))
	})

	t.Run("anonymous caller is answered not rejected", func(t *testing.T) {
		assert.False(t, authorizer.IsAuthorized(ctx, nil, string(FunctionAddUser)))
	})
}

func TestAllFunctions(t *testing.T) {
	all := AllFunctions()
	assert.Len(t, all, 11)
	assert.Contains(t, all, FunctionViewSystemSettings)

	// Mutating the returned slice must not affect later calls.
	all[0] = Function("MUTATED")
	assert.NotContains(t, AllFunctions(), Function("MUTATED"))
}
