package user

import (
	"time"

	"github.com/google/uuid"
)

// LengthUsername is the maximum stored username length. Principals longer
// than this are silently truncated before any lookup or authentication call.
const LengthUsername = 64

// User is an active-directory-style user record. Roles is a session-layer
// decoration attached after login; it is never persisted.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Name         string     `json:"name,omitempty"`
	Email        string     `json:"email,omitempty"`
	PasswordHash string     `json:"-"`
	TotpSecret   string     `json:"-"`
	Active       bool       `json:"active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`

	// Roles holds the role names assigned for the current session, not persisted
	Roles []string `json:"roles,omitempty"`
}

// CreateUserParams are the attributes needed to create a user record.
type CreateUserParams struct {
	Username     string
	Name         string
	Email        string
	PasswordHash string
	TotpSecret   string
	Active       bool
}
