package session

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/tendant/simple-vault/pkg/token"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Verifier checks the session token from the cookie or the Authorization
// header and stores the verification result in the request context. It never
// rejects the request; Resolver decides what to do with an absent token.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verify(ja, token.TokenFromCookie, jwtauth.TokenFromHeader)
}

// Resolver attaches a session context to every request. A request carrying a
// valid session token is bound to its existing session; anything else gets a
// fresh anonymous session.
func Resolver(store *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := resolve(store, r)
			sess.SetIP(ClientIP(r))
			ctx := WithContext(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolve(store *Store, r *http.Request) *Context {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return store.Create()
	}
	raw, ok := claims["session_id"].(string)
	if !ok {
		return store.Create()
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return store.Create()
	}
	if sess := store.Get(id); sess != nil {
		return sess
	}
	return store.Create()
}

// WithContext returns ctx carrying the given session.
func WithContext(ctx context.Context, sess *Context) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// FromContext returns the session attached to ctx, nil when absent.
func FromContext(ctx context.Context) *Context {
	sess, _ := ctx.Value(sessionContextKey).(*Context)
	return sess
}

// ClientIP returns the originating client IP for a request, preferring the
// first X-Forwarded-For entry over the connection's remote address.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
