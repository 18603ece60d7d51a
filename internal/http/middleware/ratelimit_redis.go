package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sextosistema/agency-platform/pkg/logging"
)

// RedisRateLimiter counts requests per IP in a fixed window stored in Redis,
// so the limit holds across instances of the API. On Redis errors it fails
// open: losing the limiter must not take the form down.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *logging.Logger
}

// NewRedisRateLimiter creates a limiter allowing limit requests per window
// per IP.
func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration, logger *logging.Logger) *RedisRateLimiter {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisRateLimiter{client: client, limit: limit, window: window, logger: logger}
}

// Allow returns true if the request from ip is within the rate limit.
func (rl *RedisRateLimiter) Allow(ctx context.Context, ip string) bool {
	key := fmt.Sprintf("ratelimit:%s:%d", ip, time.Now().Unix()/int64(rl.window.Seconds()))

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		rl.logger.Error("redis rate limiter unavailable, allowing request", "error", err)
		return true
	}
	return incr.Val() <= int64(rl.limit)
}

// RedisRateLimit returns an HTTP middleware backed by the Redis limiter.
func RedisRateLimit(limiter *RedisRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r.Context(), clientIP(r)) {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
