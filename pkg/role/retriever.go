package role

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tendant/simple-vault/pkg/user"
)

var ErrRoleNotFound = errors.New("role not found")

// Role is a named set of capabilities a user can hold for a session.
type Role struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Retriever maps an authenticated user to the role names attached to the
// session for its lifetime.
type Retriever interface {
	RetrieveRoles(ctx context.Context, u user.User) ([]string, error)
}

// Repository defines role storage and user-role assignment lookups.
type Repository interface {
	FindRoles(ctx context.Context) ([]Role, error)
	CreateRole(ctx context.Context, name string) (uuid.UUID, error)
	FindRolesByUsername(ctx context.Context, username string) ([]Role, error)
	AssignRole(ctx context.Context, username string, roleID uuid.UUID) error
}

// RepositoryRetriever resolves session roles from a role repository.
type RepositoryRetriever struct {
	repo Repository
}

// NewRepositoryRetriever creates a role retriever backed by a repository.
func NewRepositoryRetriever(repo Repository) *RepositoryRetriever {
	return &RepositoryRetriever{
		repo: repo,
	}
}

func (r *RepositoryRetriever) RetrieveRoles(ctx context.Context, u user.User) ([]string, error) {
	roles, err := r.repo.FindRolesByUsername(ctx, u.Username)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}
	return names, nil
}
