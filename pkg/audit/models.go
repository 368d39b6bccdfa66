package audit

import (
	"time"

	"github.com/google/uuid"
)

// Actions recorded by the login core.
const (
	ActionLogin  = "login"
	ActionLogout = "logout"
)

// Entry is one immutable record of a security-relevant action. Entries are
// never mutated after creation.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Principal string    `json:"principal"`
	IP        string    `json:"ip"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
}
