package webserver

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// KeyFunc extracts a bucket key from a request for per-key admission
// control. A nil KeyFunc applies one global bucket to all requests.
type KeyFunc func(r *http.Request) string

// KeyByClientIP keys admission buckets on the client IP.
func KeyByClientIP() KeyFunc {
	return func(r *http.Request) string {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return r.RemoteAddr
		}
		return host
	}
}

// QoSConfig configures token-bucket admission control for the server.
type QoSConfig struct {
	// Limit is the sustained admission rate in requests per second.
	Limit rate.Limit

	// Burst is the bucket capacity.
	Burst int

	// KeyFunc selects per-key buckets. Nil means one global bucket.
	KeyFunc KeyFunc
}

// QoS returns middleware that admits requests through a token bucket and
// answers 429 when the bucket is empty.
func QoS(cfg QoSConfig) Middleware {
	if cfg.KeyFunc == nil {
		limiter := rate.NewLimiter(cfg.Limit, cfg.Burst)
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !limiter.Allow() {
					WriteError(w, http.StatusTooManyRequests, "rate limit exceeded",
						Error{Field: "qos", Message: "too many requests"})
					return
				}
				next.ServeHTTP(w, r)
			})
		}
	}

	var mu sync.RWMutex
	limiters := make(map[string]*rate.Limiter)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := cfg.KeyFunc(r)

			mu.RLock()
			limiter, exists := limiters[key]
			mu.RUnlock()

			if !exists {
				mu.Lock()
				limiter, exists = limiters[key]
				if !exists {
					limiter = rate.NewLimiter(cfg.Limit, cfg.Burst)
					limiters[key] = limiter
				}
				mu.Unlock()
			}

			if !limiter.Allow() {
				WriteError(w, http.StatusTooManyRequests, "rate limit exceeded",
					Error{Field: "qos", Message: "too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
