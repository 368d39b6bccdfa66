// Package sso abstracts the external single-sign-on layer: whether it is in
// force, which principals may bypass it, and the externally-asserted
// identity for the current request. Deployments without SSO use the
// disabled no-op implementation.
package sso
