package user

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// Directory defines lookup and persistence of user records. Lookups only
// resolve active users; a missing or deactivated user yields (nil, nil).
type Directory interface {
	// FindActiveByUsername returns the active user with the given username,
	// or nil when no active user matches.
	FindActiveByUsername(ctx context.Context, username string) (*User, error)

	// Save persists updates to an existing user record.
	Save(ctx context.Context, u *User) error
}

// Repository extends Directory with the operations the user service and the
// credential-backed authenticators need.
type Repository interface {
	Directory

	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	FindPasswordHash(ctx context.Context, username string) (string, error)
	FindTotpSecret(ctx context.Context, username string) (string, error)
	AnyUserExists(ctx context.Context) (bool, error)
}
