// Package loginflow orchestrates the login and logout path: principal
// normalization, SSO bypass enforcement, delegation to the authenticator,
// session establishment, per-function authorization lookups, and audit
// logging of every attempt.
package loginflow
