package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	service := NewUserService(NewInMemoryUserRepository(), Options{})

	t.Run("hashes the password", func(t *testing.T) {
		u, err := service.CreateUser(ctx, "alice", "Alice", "alice@example.com", "s3cret")
		require.NoError(t, err)

		assert.Equal(t, "alice", u.Username)
		assert.True(t, u.Active)
		assert.NotEqual(t, "s3cret", u.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
	})

	t.Run("rejects missing username", func(t *testing.T) {
		_, err := service.CreateUser(ctx, "", "", "", "pw")
		assert.Error(t, err)
	})

	t.Run("rejects missing password", func(t *testing.T) {
		_, err := service.CreateUser(ctx, "bob", "", "", "")
		assert.Error(t, err)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		_, err := service.CreateUser(ctx, "alice", "", "", "pw")
		assert.ErrorIs(t, err, ErrUserExists)
	})
}

func TestVerifyInitialization(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds admin on empty directory", func(t *testing.T) {
		repo := NewInMemoryUserRepository()
		service := NewUserService(repo, Options{})

		require.NoError(t, service.VerifyInitialization(ctx))

		admin, err := repo.FindActiveByUsername(ctx, "admin")
		require.NoError(t, err)
		require.NotNil(t, admin)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin")))
	})

	t.Run("idempotent", func(t *testing.T) {
		repo := NewInMemoryUserRepository()
		service := NewUserService(repo, Options{})

		require.NoError(t, service.VerifyInitialization(ctx))
		require.NoError(t, service.VerifyInitialization(ctx))
	})

	t.Run("skips seeding when users exist", func(t *testing.T) {
		repo := NewInMemoryUserRepository()
		_, err := repo.CreateUser(ctx, CreateUserParams{Username: "alice", PasswordHash: "x", Active: true})
		require.NoError(t, err)

		service := NewUserService(repo, Options{})
		require.NoError(t, service.VerifyInitialization(ctx))

		admin, err := repo.FindActiveByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.Nil(t, admin)
	})

	t.Run("custom admin credentials", func(t *testing.T) {
		repo := NewInMemoryUserRepository()
		service := NewUserService(repo, Options{AdminUsername: "root", AdminPassword: "changeme"})

		require.NoError(t, service.VerifyInitialization(ctx))

		root, err := repo.FindActiveByUsername(ctx, "root")
		require.NoError(t, err)
		require.NotNil(t, root)
	})
}

func TestEveryoneGroup(t *testing.T) {
	assert.Equal(t, "Everyone", NewUserService(NewInMemoryUserRepository(), Options{}).EveryoneGroup())
	assert.Equal(t, "Staff", NewUserService(NewInMemoryUserRepository(), Options{EveryoneGroup: "Staff"}).EveryoneGroup())
}

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryUserRepository()

	_, err := repo.CreateUser(ctx, CreateUserParams{
		Username:     "alice",
		PasswordHash: "hash",
		TotpSecret:   "secret",
		Active:       true,
	})
	require.NoError(t, err)
	_, err = repo.CreateUser(ctx, CreateUserParams{Username: "inactive", PasswordHash: "hash", Active: false})
	require.NoError(t, err)

	t.Run("inactive users are invisible to lookup", func(t *testing.T) {
		u, err := repo.FindActiveByUsername(ctx, "inactive")
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("absent user is nil not error", func(t *testing.T) {
		u, err := repo.FindActiveByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("save rejects unknown user", func(t *testing.T) {
		err := repo.Save(ctx, &User{Username: "nobody"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("credential lookups", func(t *testing.T) {
		hash, err := repo.FindPasswordHash(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "hash", hash)

		secret, err := repo.FindTotpSecret(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "secret", secret)

		_, err = repo.FindPasswordHash(ctx, "nobody")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("any user exists", func(t *testing.T) {
		exists, err := repo.AnyUserExists(ctx)
		require.NoError(t, err)
		assert.True(t, exists)

		empty := NewInMemoryUserRepository()
		exists, err = empty.AnyUserExists(ctx)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
