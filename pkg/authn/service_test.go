package authn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tendant/simple-vault/pkg/user"
)

type stubStore struct {
	hashes  map[string]string
	secrets map[string]string
	err     error
}

func (s *stubStore) FindPasswordHash(ctx context.Context, username string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	hash, ok := s.hashes[username]
	if !ok {
		return "", user.ErrUserNotFound
	}
	return hash, nil
}

func (s *stubStore) FindTotpSecret(ctx context.Context, username string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	secret, ok := s.secrets[username]
	if !ok {
		return "", user.ErrUserNotFound
	}
	return secret, nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	store := &stubStore{
		hashes: map[string]string{"alice": hashPassword(t, "s3cret")},
	}
	authenticator := NewPasswordAuthenticator(store)

	t.Run("correct password", func(t *testing.T) {
		status := authenticator.Authenticate(ctx, "alice", []string{"s3cret"})
		assert.Equal(t, StatusSuccess, status)
	})

	t.Run("wrong password", func(t *testing.T) {
		status := authenticator.Authenticate(ctx, "alice", []string{"nope"})
		assert.Equal(t, StatusFailure, status)
	})

	t.Run("unknown user fails like wrong password", func(t *testing.T) {
		status := authenticator.Authenticate(ctx, "mallory", []string{"s3cret"})
		assert.Equal(t, StatusFailure, status)
	})

	t.Run("empty credentials", func(t *testing.T) {
		assert.Equal(t, StatusFailure, authenticator.Authenticate(ctx, "alice", nil))
		assert.Equal(t, StatusFailure, authenticator.Authenticate(ctx, "alice", []string{""}))
		assert.Equal(t, StatusFailure, authenticator.Authenticate(ctx, "", []string{"s3cret"}))
	})

	t.Run("store error", func(t *testing.T) {
		broken := NewPasswordAuthenticator(&stubStore{err: errors.New("db down")})
		assert.Equal(t, StatusFailure, broken.Authenticate(ctx, "alice", []string{"s3cret"}))
	})
}

func TestTwoStepAuthenticator(t *testing.T) {
	ctx := context.Background()

	secret, err := GenerateTotpSecret("simple-vault", "alice")
	require.NoError(t, err)

	store := &stubStore{
		hashes: map[string]string{
			"alice": hashPassword(t, "s3cret"),
			"bob":   hashPassword(t, "hunter2"),
		},
		secrets: map[string]string{
			"alice": secret,
			"bob":   "",
		},
	}
	authenticator := NewTwoStepAuthenticator(NewPasswordAuthenticator(store), store)

	t.Run("password only yields two step required", func(t *testing.T) {
		status := authenticator.Authenticate(ctx, "alice", []string{"s3cret"})
		assert.Equal(t, StatusTwoStepRequired, status)
	})

	t.Run("valid passcode completes login", func(t *testing.T) {
		passcode, err := GenerateTotpPasscode(secret)
		require.NoError(t, err)

		status := authenticator.Authenticate(ctx, "alice", []string{"s3cret", passcode})
		assert.Equal(t, StatusSuccess, status)
	})

	t.Run("invalid passcode fails", func(t *testing.T) {
		status := authenticator.Authenticate(ctx, "alice", []string{"s3cret", "000000"})
		assert.Equal(t, StatusFailure, status)
	})

	t.Run("wrong password never reaches second step", func(t *testing.T) {
		status := authenticator.Authenticate(ctx, "alice", []string{"nope"})
		assert.Equal(t, StatusFailure, status)
	})

	t.Run("user without secret passes through", func(t *testing.T) {
		status := authenticator.Authenticate(ctx, "bob", []string{"hunter2"})
		assert.Equal(t, StatusSuccess, status)
	})
}

func TestAuthenticatorFunc(t *testing.T) {
	fn := AuthenticatorFunc(func(ctx context.Context, principal string, credentials []string) Status {
		return StatusTwoStepRequired
	})
	assert.Equal(t, StatusTwoStepRequired, fn.Authenticate(context.Background(), "x", nil))
}
