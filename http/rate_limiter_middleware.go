package http

import (
	"net"
	"net/http"

	"market-finder/metrics"
)

// RateLimitMiddleware refuses requests from clients that exhausted their
// bucket. It expects chi's RealIP middleware to have run first.
func RateLimitMiddleware(
	limiter *RateLimiter,
	m *metrics.Metrics,
) func(http.Handler) http.Handler {

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			if !limiter.Allow(clientIP(r)) {
				m.ObserveRateLimited()
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
