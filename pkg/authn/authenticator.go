package authn

import "context"

// Authenticator verifies a principal against the supplied credentials.
// Credentials are an ordered sequence of opaque values (password first,
// second factor after it when present). Implementations map their internal
// failures to StatusFailure; they never leak errors to callers.
type Authenticator interface {
	Authenticate(ctx context.Context, principal string, credentials []string) Status
}

// The AuthenticatorFunc type is an adapter to allow the use of ordinary
// functions as authenticators.
type AuthenticatorFunc func(ctx context.Context, principal string, credentials []string) Status

func (f AuthenticatorFunc) Authenticate(ctx context.Context, principal string, credentials []string) Status {
	return f(ctx, principal, credentials)
}
