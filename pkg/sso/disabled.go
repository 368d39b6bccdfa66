package sso

import "context"

// DisabledAuthenticator is the Authenticator used when no SSO layer exists.
// Every login is a local login.
type DisabledAuthenticator struct{}

// NewDisabledAuthenticator creates an Authenticator with SSO turned off.
// Use this for deployments that authenticate locally only.
func NewDisabledAuthenticator() Authenticator {
	return &DisabledAuthenticator{}
}

func (d *DisabledAuthenticator) Enabled() bool {
	return false
}

func (d *DisabledAuthenticator) BypassAllowed(principal string) bool {
	return true
}

func (d *DisabledAuthenticator) Principal(ctx context.Context) string {
	return ""
}

func (d *DisabledAuthenticator) LogoutURL() string {
	return ""
}
