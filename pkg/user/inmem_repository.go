package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryUserRepository implements Repository using in-memory storage
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]User // username -> User
}

// NewInMemoryUserRepository creates a new in-memory user repository
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]User),
	}
}

// FindActiveByUsername returns the active user with the given username, nil when absent
func (r *InMemoryUserRepository) FindActiveByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok || !u.Active {
		return nil, nil
	}
	// Copy so callers cannot mutate the stored record
	found := u
	return &found, nil
}

// Save persists updates to an existing user record
func (r *InMemoryUserRepository) Save(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[u.Username]
	if !ok {
		return ErrUserNotFound
	}

	stored.Name = u.Name
	stored.Email = u.Email
	stored.PasswordHash = u.PasswordHash
	stored.TotpSecret = u.TotpSecret
	stored.Active = u.Active
	stored.LastLogin = u.LastLogin
	r.users[u.Username] = stored
	return nil
}

// CreateUser creates a new user
func (r *InMemoryUserRepository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[params.Username]; ok {
		return User{}, ErrUserExists
	}

	u := User{
		ID:           uuid.New(),
		Username:     params.Username,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		TotpSecret:   params.TotpSecret,
		Active:       params.Active,
		CreatedAt:    time.Now(),
	}
	r.users[u.Username] = u
	return u, nil
}

// FindPasswordHash returns the stored password hash for an active username
func (r *InMemoryUserRepository) FindPasswordHash(ctx context.Context, username string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok || !u.Active {
		return "", ErrUserNotFound
	}
	return u.PasswordHash, nil
}

// FindTotpSecret returns the TOTP secret for an active username, empty when
// two-step authentication is not enabled for the user
func (r *InMemoryUserRepository) FindTotpSecret(ctx context.Context, username string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok || !u.Active {
		return "", ErrUserNotFound
	}
	return u.TotpSecret, nil
}

// AnyUserExists checks if any user exists in the system
func (r *InMemoryUserRepository) AnyUserExists(ctx context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users) > 0, nil
}
