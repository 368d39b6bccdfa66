package session

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext(t *testing.T) {
	t.Run("starts unauthenticated", func(t *testing.T) {
		sess := NewContext()
		assert.Empty(t, sess.Username())
		assert.Nil(t, sess.Roles())
		assert.Empty(t, sess.CsrfToken())
		assert.False(t, sess.Invalidated())
	})

	t.Run("identity round trip", func(t *testing.T) {
		sess := NewContext()
		sess.SetUsername("alice")
		sess.SetRoles([]string{"ADMIN", "USER"})
		sess.SetIP("10.0.0.1")

		assert.Equal(t, "alice", sess.Username())
		assert.Equal(t, []string{"ADMIN", "USER"}, sess.Roles())
		assert.Equal(t, "10.0.0.1", sess.IP())
	})

	t.Run("csrf token init is idempotent", func(t *testing.T) {
		sess := NewContext()

		first, err := sess.InitCsrfToken()
		require.NoError(t, err)
		assert.NotEmpty(t, first)

		second, err := sess.InitCsrfToken()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("invalidate clears everything", func(t *testing.T) {
		sess := NewContext()
		sess.SetUsername("alice")
		sess.SetRoles([]string{"ADMIN"})
		_, err := sess.InitCsrfToken()
		require.NoError(t, err)

		sess.Invalidate()

		assert.True(t, sess.Invalidated())
		assert.Empty(t, sess.Username())
		assert.Nil(t, sess.Roles())
		assert.Empty(t, sess.CsrfToken())
	})
}

func TestStore(t *testing.T) {
	store := NewStore()

	sess := store.Create()
	require.NotNil(t, sess)
	assert.Equal(t, 1, store.Len())

	t.Run("get returns the live session", func(t *testing.T) {
		got := store.Get(sess.ID())
		assert.Same(t, sess, got)
	})

	t.Run("unknown id returns nil", func(t *testing.T) {
		other := NewContext()
		assert.Nil(t, store.Get(other.ID()))
	})

	t.Run("invalidated sessions are dropped on lookup", func(t *testing.T) {
		sess.Invalidate()
		assert.Nil(t, store.Get(sess.ID()))
		assert.Zero(t, store.Len())
	})

	t.Run("rotate moves state onto a fresh id", func(t *testing.T) {
		old := store.Create()
		old.SetUsername("alice")
		old.SetRoles([]string{"ADMIN"})
		old.SetIP("10.0.0.1")

		fresh := store.Rotate(old)

		assert.NotEqual(t, old.ID(), fresh.ID())
		assert.Equal(t, "alice", fresh.Username())
		assert.Equal(t, []string{"ADMIN"}, fresh.Roles())
		assert.Equal(t, "10.0.0.1", fresh.IP())

		assert.True(t, old.Invalidated())
		assert.Empty(t, old.Username())
		assert.Nil(t, store.Get(old.ID()))
		assert.Same(t, fresh, store.Get(fresh.ID()))
		assert.Equal(t, 1, store.Len())
	})
}

func TestClientIP(t *testing.T) {
	t.Run("remote addr", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "192.0.2.7:51334"
		assert.Equal(t, "192.0.2.7", ClientIP(r))
	})

	t.Run("x-forwarded-for wins", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:80"
		r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		assert.Equal(t, "203.0.113.9", ClientIP(r))
	})
}
