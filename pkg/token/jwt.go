// Package token issues and verifies the JWT that carries a session ID in the
// session cookie.
package token

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "sessionToken"

// Jwt signs and parses session tokens and writes the session cookie.
type Jwt struct {
	Secret         string
	Expiration     time.Duration
	CookieHttpOnly bool
	CookieSecure   bool
}

type Option func(*Jwt)

func WithExpiration(expiration time.Duration) Option {
	return func(j *Jwt) {
		j.Expiration = expiration
	}
}

func WithCookieHttpOnly(httpOnly bool) Option {
	return func(j *Jwt) {
		j.CookieHttpOnly = httpOnly
	}
}

func WithCookieSecure(secure bool) Option {
	return func(j *Jwt) {
		j.CookieSecure = secure
	}
}

// NewJwtServiceOptions creates a Jwt with the given signing secret.
func NewJwtServiceOptions(secret string, opts ...Option) *Jwt {
	jwtSvc := &Jwt{
		Secret:         secret,
		Expiration:     8 * time.Hour,
		CookieHttpOnly: true,
	}

	for _, opt := range opts {
		opt(jwtSvc)
	}

	return jwtSvc
}

// SessionClaims are the claims carried by a session token.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// CreateSessionToken signs a token binding the given session ID.
func (j *Jwt) CreateSessionToken(sessionID uuid.UUID) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.Expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(j.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return ss, nil
}

// ParseSessionToken verifies a token string and returns the session ID it
// binds.
func (j *Jwt) ParseSessionToken(tokenStr string) (uuid.UUID, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(j.Secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session token: %w", err)
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session id claim: %w", err)
	}
	return sessionID, nil
}

// SetSessionCookie writes the session cookie on the response.
func (j *Jwt) SetSessionCookie(w http.ResponseWriter, tokenStr string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    tokenStr,
		Path:     "/",
		HttpOnly: j.CookieHttpOnly,
		Secure:   j.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(j.Expiration / time.Second),
	})
}

// ClearSessionCookie expires the session cookie.
func (j *Jwt) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: j.CookieHttpOnly,
		Secure:   j.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// TokenFromCookie extracts the raw session token from a request, empty when
// the cookie is absent.
func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
