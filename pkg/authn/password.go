package authn

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/tendant/simple-vault/pkg/user"
)

// PasswordStore resolves the stored password hash for an active username.
type PasswordStore interface {
	FindPasswordHash(ctx context.Context, username string) (string, error)
}

// PasswordAuthenticator verifies the first credential as a bcrypt password
// against the directory's stored hash. Unknown users fail the same way as
// wrong passwords; user existence is never revealed at this layer.
type PasswordAuthenticator struct {
	store PasswordStore
}

// NewPasswordAuthenticator creates a password authenticator backed by a
// credential store.
func NewPasswordAuthenticator(store PasswordStore) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		store: store,
	}
}

func (a *PasswordAuthenticator) Authenticate(ctx context.Context, principal string, credentials []string) Status {
	if principal == "" || len(credentials) == 0 || credentials[0] == "" {
		return StatusFailure
	}

	hash, err := a.store.FindPasswordHash(ctx, principal)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			slog.Error("Failed to look up password hash", "err", err)
		}
		return StatusFailure
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(credentials[0])); err != nil {
		return StatusFailure
	}
	return StatusSuccess
}
