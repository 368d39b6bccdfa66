// Package utils provides small shared helpers: SQL null type conversions,
// secure random string generation, and string truncation. All functions are
// stateless and safe for concurrent use.
package utils
