package ratelimit

import (
	"log/slog"
	"net/http"

	"github.com/tendant/simple-vault/pkg/session"
)

// PerIP limits requests by client address. Over-limit requests are rejected
// with 429 before the wrapped handler runs.
func PerIP(limiter *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := session.ClientIP(r)
			if !limiter.Allow(ip) {
				slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
