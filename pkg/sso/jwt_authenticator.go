package sso

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tendant/simple-vault/pkg/config"
)

// JwtAuthenticator trusts identities asserted by an upstream SSO gateway as
// HS256-signed tokens. The token subject is the principal; verification
// failures simply yield no principal.
type JwtAuthenticator struct {
	secret          []byte
	issuer          string
	bypassUsernames map[string]bool
	logoutURL       string
}

// NewJwtAuthenticator creates an SSO authenticator from config.
func NewJwtAuthenticator(cfg config.SsoConfig) *JwtAuthenticator {
	bypass := make(map[string]bool, len(cfg.BypassUsernames))
	for _, username := range cfg.BypassUsernames {
		bypass[username] = true
	}
	return &JwtAuthenticator{
		secret:          []byte(cfg.AssertionSecret),
		issuer:          cfg.Issuer,
		bypassUsernames: bypass,
		logoutURL:       cfg.LogoutURL,
	}
}

func (a *JwtAuthenticator) Enabled() bool {
	return true
}

func (a *JwtAuthenticator) BypassAllowed(principal string) bool {
	return a.bypassUsernames[principal]
}

func (a *JwtAuthenticator) Principal(ctx context.Context) string {
	assertion := AssertionFromContext(ctx)
	if assertion == "" {
		return ""
	}

	token, err := jwt.Parse(assertion, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithIssuer(a.issuer), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		slog.Warn("Failed to verify SSO assertion", "err", err)
		return ""
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		slog.Warn("SSO assertion has no subject", "err", err)
		return ""
	}
	return subject
}

func (a *JwtAuthenticator) LogoutURL() string {
	return a.logoutURL
}

// SignAssertion issues an assertion token for a principal. Intended for the
// upstream gateway and for tests.
func SignAssertion(secret []byte, issuer, principal string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  issuer,
		Subject: principal,
	})
	return token.SignedString(secret)
}
