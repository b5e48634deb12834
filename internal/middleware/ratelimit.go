package middleware

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/caso-enron/comments-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the fixed counting window per IP.
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the maximum number of requests allowed in the window.
	RateLimitMaxRequests = 60
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting.
	RateLimitKeyPrefix = "ratelimit:"
)

// RateLimit provides Redis-backed fixed-window rate limiting per IP.
// Redis failures fail open: a comment board should stay usable when the
// limiter's backing store is down.
func RateLimit(redisClient *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := RateLimitKeyPrefix + clientip.RealClientIP(r)

			count, err := redisClient.Incr(ctx, key).Result()
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				redisClient.Expire(ctx, key, RateLimitWindow)
			}

			if count > RateLimitMaxRequests {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"success":false,"message":"Too many requests. Please try again later."}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
