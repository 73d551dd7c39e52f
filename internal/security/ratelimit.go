package security

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter grants each client a fixed budget of requests per window.
// Buckets refill all at once when the window elapses rather than
// continuously, which keeps the bookkeeping to a counter and a timestamp.
type RateLimiter struct {
	clients map[string]*clientBucket
	mu      sync.RWMutex
	limit   int
	window  time.Duration
}

type clientBucket struct {
	remaining  int
	lastRefill time.Time
	mu         sync.Mutex
}

// NewRateLimiter allows up to limit requests per client per window.
// It also starts a background sweep that drops buckets for clients
// that have gone quiet.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientBucket),
		limit:   limit,
		window:  window,
	}
	go rl.sweepIdleClients()
	return rl
}

// Allow reports whether the client identified by ip has budget left,
// consuming one unit when it does.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	bucket, ok := rl.clients[ip]
	if !ok {
		bucket = &clientBucket{
			remaining:  rl.limit,
			lastRefill: time.Now(),
		}
		rl.clients[ip] = bucket
	}
	rl.mu.Unlock()

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	if time.Since(bucket.lastRefill) >= rl.window {
		bucket.remaining = rl.limit
		bucket.lastRefill = time.Now()
	}

	if bucket.remaining > 0 {
		bucket.remaining--
		return true
	}
	return false
}

// sweepIdleClients periodically forgets clients that have been idle
// for at least two windows, so the map does not grow without bound.
func (rl *RateLimiter) sweepIdleClients() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for ip, bucket := range rl.clients {
			bucket.mu.Lock()
			idle := time.Since(bucket.lastRefill) > rl.window*2
			bucket.mu.Unlock()
			if idle {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// GetClientIP resolves the caller's address, preferring proxy headers
// over the raw socket address.
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
