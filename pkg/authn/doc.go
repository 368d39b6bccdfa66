// Package authn defines the tri-state authentication outcome and the
// pluggable Authenticator contract, plus two concrete implementations: a
// bcrypt password authenticator and a TOTP two-step decorator.
package authn
