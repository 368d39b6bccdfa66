package role

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-vault/pkg/user"
)

func TestRepositoryRetriever(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRoleRepository()

	adminID, err := repo.CreateRole(ctx, "ADMIN")
	require.NoError(t, err)
	userID, err := repo.CreateRole(ctx, "USER")
	require.NoError(t, err)

	require.NoError(t, repo.AssignRole(ctx, "alice", adminID))
	require.NoError(t, repo.AssignRole(ctx, "alice", userID))

	retriever := NewRepositoryRetriever(repo)

	t.Run("returns assigned role names", func(t *testing.T) {
		roles, err := retriever.RetrieveRoles(ctx, user.User{Username: "alice"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"ADMIN", "USER"}, roles)
	})

	t.Run("user without assignments gets empty set", func(t *testing.T) {
		roles, err := retriever.RetrieveRoles(ctx, user.User{Username: "bob"})
		require.NoError(t, err)
		assert.Empty(t, roles)
	})
}

func TestInMemoryRoleRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRoleRepository()

	id, err := repo.CreateRole(ctx, "ADMIN")
	require.NoError(t, err)

	t.Run("find roles", func(t *testing.T) {
		roles, err := repo.FindRoles(ctx)
		require.NoError(t, err)
		require.Len(t, roles, 1)
		assert.Equal(t, "ADMIN", roles[0].Name)
		assert.Equal(t, id, roles[0].ID)
	})

	t.Run("assigning unknown role fails", func(t *testing.T) {
		other := NewInMemoryRoleRepository()
		err := other.AssignRole(ctx, "alice", id)
		assert.ErrorIs(t, err, ErrRoleNotFound)
	})
}
