// Package audit records immutable entries for security-relevant actions
// (login and logout attempts), with in-memory and PostgreSQL storage and
// optional failed-login email alerts.
//
// An audit write failure surfaces through the Logger's error return so the
// caller can log it; it must never change the outcome of the operation
// being audited.
package audit
