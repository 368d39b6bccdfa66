package user

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// SystemInitializer verifies one-time system setup. Safe to call on every
// settings request; the check is idempotent.
type SystemInitializer interface {
	VerifyInitialization(ctx context.Context) error
	EveryoneGroup() string
}

// UserService provides user management on top of a Repository, including the
// one-time bootstrap of the admin account.
type UserService struct {
	repo          Repository
	everyoneGroup string
	adminUsername string
	adminPassword string

	initOnce sync.Once
	initErr  error
}

// Options configure a UserService.
type Options struct {
	// EveryoneGroup is the default group name every user belongs to
	EveryoneGroup string

	// AdminUsername and AdminPassword seed the first account when the
	// directory is empty. Defaults: "admin" / "admin".
	AdminUsername string
	AdminPassword string
}

// NewUserService creates a new user service
func NewUserService(repo Repository, opts Options) *UserService {
	if opts.EveryoneGroup == "" {
		opts.EveryoneGroup = "Everyone"
	}
	return &UserService{
		repo:          repo,
		everyoneGroup: opts.EveryoneGroup,
		adminUsername: opts.AdminUsername,
		adminPassword: opts.AdminPassword,
	}
}

// CreateUser validates params, hashes the password and creates the record.
func (s *UserService) CreateUser(ctx context.Context, username, name, email, password string) (User, error) {
	if username == "" {
		return User{}, fmt.Errorf("username is required")
	}
	if password == "" {
		return User{}, fmt.Errorf("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.CreateUser(ctx, CreateUserParams{
		Username:     username,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Active:       true,
	})
}

// VerifyInitialization seeds the admin account the first time the system is
// used. Subsequent calls are no-ops.
func (s *UserService) VerifyInitialization(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.repo.AnyUserExists(ctx)
		if err != nil {
			s.initErr = fmt.Errorf("failed to check initialization: %w", err)
			return
		}
		if exists {
			return
		}

		username := s.adminUsername
		if username == "" {
			username = "admin"
		}
		password := s.adminPassword
		if password == "" {
			password = "admin"
		}

		_, err = s.CreateUser(ctx, username, "Administrator", "", password)
		if err != nil {
			s.initErr = fmt.Errorf("failed to seed admin user: %w", err)
			return
		}
		slog.Info("Seeded initial admin user", "username", username)
	})
	return s.initErr
}

// EveryoneGroup returns the default group name every user belongs to.
func (s *UserService) EveryoneGroup() string {
	return s.everyoneGroup
}
