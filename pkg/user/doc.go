// Package user provides the user directory: the User model, lookup and
// persistence of user records (in-memory and PostgreSQL), and the one-time
// system initialization that seeds the first admin account.
//
// Lookups resolve active users only. A username that refers to a deactivated
// or deleted user behaves exactly like an unknown username.
package user
