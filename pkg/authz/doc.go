// Package authz holds the function enumeration and the pluggable Authorizer
// contract, with a role-based implementation driven by session role names.
package authz
