package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/tendant/simple-vault/pkg/utils"
)

// Context holds the ambient per-request identity: the logged-in username,
// the session's role names, the client IP, and the anti-forgery token. One
// Context exists per session; it carries no business logic.
type Context struct {
	mu          sync.RWMutex
	id          uuid.UUID
	ip          string
	username    string
	roles       []string
	csrfToken   string
	invalidated bool
}

// NewContext creates an unauthenticated session context.
func NewContext() *Context {
	return &Context{
		id: uuid.New(),
	}
}

// ID returns the session identifier.
func (c *Context) ID() uuid.UUID {
	return c.id
}

// Username returns the logged-in username, empty when unauthenticated.
func (c *Context) Username() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username
}

// SetUsername records the logged-in username; empty clears it.
func (c *Context) SetUsername(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.username = username
}

// Roles returns the role names attached to this session.
func (c *Context) Roles() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roles
}

// SetRoles records the session role set; nil clears it.
func (c *Context) SetRoles(roles []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roles = roles
}

// IP returns the client IP bound to the current request.
func (c *Context) IP() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ip
}

// SetIP binds the client IP for the current request.
func (c *Context) SetIP(ip string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ip = ip
}

// CsrfToken returns the anti-forgery token, empty before InitCsrfToken.
func (c *Context) CsrfToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.csrfToken
}

// InitCsrfToken ensures an anti-forgery token exists for this session and
// returns it. Idempotent: an existing token is kept.
func (c *Context) InitCsrfToken() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.csrfToken != "" {
		return c.csrfToken, nil
	}
	csrfToken, err := utils.GenerateRandomString(32)
	if err != nil {
		return "", err
	}
	c.csrfToken = csrfToken
	return c.csrfToken, nil
}

// Invalidate clears all session state and marks the context dead. The store
// drops invalidated sessions on the next request.
func (c *Context) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.username = ""
	c.roles = nil
	c.csrfToken = ""
	c.invalidated = true
}

// Invalidated reports whether Invalidate was called.
func (c *Context) Invalidated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.invalidated
}
