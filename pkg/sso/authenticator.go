package sso

import "context"

// Authenticator answers whether single-sign-on is in force, whether a given
// principal may bypass it, and supplies the externally-asserted principal
// when SSO handled authentication upstream.
type Authenticator interface {
	// Enabled reports whether logins must come through the SSO layer.
	Enabled() bool

	// BypassAllowed reports whether the principal may authenticate locally
	// even though SSO is enabled.
	BypassAllowed(principal string) bool

	// Principal returns the externally-asserted identity for this request,
	// empty when none was asserted.
	Principal(ctx context.Context) string

	// LogoutURL returns the external logout endpoint, empty when none is
	// configured.
	LogoutURL() string
}

type assertionKey struct{}

// WithAssertion attaches the raw SSO assertion carried by the current
// request to the context for Principal to consume.
func WithAssertion(ctx context.Context, assertion string) context.Context {
	return context.WithValue(ctx, assertionKey{}, assertion)
}

// AssertionFromContext returns the raw SSO assertion attached to ctx, empty
// when the request carried none.
func AssertionFromContext(ctx context.Context) string {
	assertion, _ := ctx.Value(assertionKey{}).(string)
	return assertion
}
