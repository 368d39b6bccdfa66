package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBucket(t *testing.T) {
	t.Run("burst up to capacity", func(t *testing.T) {
		bucket := NewBucket(3, 1)

		assert.True(t, bucket.Allow())
		assert.True(t, bucket.Allow())
		assert.True(t, bucket.Allow())
		assert.False(t, bucket.Allow())
	})

	t.Run("refills over time", func(t *testing.T) {
		bucket := NewBucket(1, 100)

		assert.True(t, bucket.Allow())
		assert.False(t, bucket.Allow())

		time.Sleep(50 * time.Millisecond)
		assert.True(t, bucket.Allow())
	})

	t.Run("reset restores capacity", func(t *testing.T) {
		bucket := NewBucket(2, 0.001)
		bucket.Allow()
		bucket.Allow()
		assert.False(t, bucket.Allow())

		bucket.Reset()
		assert.True(t, bucket.Allow())
	})
}

func TestLimiter(t *testing.T) {
	t.Run("keys are independent", func(t *testing.T) {
		limiter := NewLimiter(1, 0.001, 0)

		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.False(t, limiter.Allow("10.0.0.1"))
		assert.True(t, limiter.Allow("10.0.0.2"))
	})

	t.Run("reset affects only the given key", func(t *testing.T) {
		limiter := NewLimiter(1, 0.001, 0)

		limiter.Allow("a")
		limiter.Allow("b")

		limiter.Reset("a")
		assert.True(t, limiter.Allow("a"))
		assert.False(t, limiter.Allow("b"))
	})
}

func TestPerIPMiddleware(t *testing.T) {
	limiter := NewLimiter(2, 0.001, 0)
	handler := PerIP(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(remoteAddr string) int {
		r := httptest.NewRequest("POST", "/login", nil)
		r.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("192.0.2.1:1000"))
	assert.Equal(t, http.StatusOK, call("192.0.2.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, call("192.0.2.1:1002"))

	// A different address gets its own bucket.
	assert.Equal(t, http.StatusOK, call("192.0.2.2:1000"))
}
