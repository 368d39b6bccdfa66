// Package ratelimit throttles repeated login attempts per client address
// using a token bucket per key.
package ratelimit

import (
	"sync"
	"time"
)

// Bucket is a single token bucket. Tokens refill continuously at refillRate
// per second up to capacity; each allowed request spends one token.
type Bucket struct {
	mu         sync.Mutex
	capacity   int
	tokens     float64
	refillRate float64
	lastRefill time.Time
}

func NewBucket(capacity int, refillRate float64) *Bucket {
	return &Bucket{
		capacity:   capacity,
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Allow spends one token if available and reports whether the request may
// proceed.
func (b *Bucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(float64(b.capacity), b.tokens+elapsed*b.refillRate)
	b.lastRefill = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}
	return false
}

// Reset refills the bucket to capacity.
func (b *Bucket) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = float64(b.capacity)
	b.lastRefill = time.Now()
}

// Limiter keeps one bucket per key, typically the client IP.
type Limiter struct {
	mu         sync.RWMutex
	buckets    map[string]*Bucket
	capacity   int
	refillRate float64
	ttl        time.Duration
}

// NewLimiter creates a keyed limiter. capacity is the allowed burst per key,
// refillRate the sustained requests per second per key. When ttl is positive
// a background goroutine evicts buckets idle longer than ttl.
func NewLimiter(capacity int, refillRate float64, ttl time.Duration) *Limiter {
	l := &Limiter{
		buckets:    make(map[string]*Bucket),
		capacity:   capacity,
		refillRate: refillRate,
		ttl:        ttl,
	}
	if ttl > 0 {
		go l.evictIdle()
	}
	return l
}

// Allow reports whether a request for key may proceed, creating the bucket
// on first use.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = NewBucket(l.capacity, l.refillRate)
		l.buckets[key] = bucket
	}
	l.mu.Unlock()

	return bucket.Allow()
}

// Reset refills the bucket for key, if any. Used after a successful login so
// a legitimate user is not penalized for earlier failures from the same
// address.
func (l *Limiter) Reset(key string) {
	l.mu.RLock()
	bucket, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		bucket.Reset()
	}
}

func (l *Limiter) evictIdle() {
	ticker := time.NewTicker(l.ttl)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for key, bucket := range l.buckets {
			bucket.mu.Lock()
			idle := now.Sub(bucket.lastRefill)
			bucket.mu.Unlock()
			if idle > l.ttl {
				delete(l.buckets, key)
			}
		}
		l.mu.Unlock()
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
