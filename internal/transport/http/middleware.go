package http

import (
	"context"
	"log"
	"net"
	"net/http"
)

// Limiter decides whether another request under a key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit applies the limiter per client IP. A limiter failure lets the
// request through rather than rejecting it: availability over strictness.
func RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				log.Printf("rate limiter unavailable: %v", err)
				allowed = true
			}
			if !allowed {
				respondError(w, http.StatusTooManyRequests, "too many requests, please slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	// middleware.RealIP has already folded X-Forwarded-For into RemoteAddr.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
