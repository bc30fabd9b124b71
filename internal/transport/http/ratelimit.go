package httptransport

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	platformmw "truedial/internal/platform/middleware"
	"truedial/internal/platform/redis"
)

// rateLimit is a fixed-window per-account limiter backed by Redis. The window
// key expires on first increment, so limits reset cleanly every minute. Redis
// failures fail open: losing rate limiting is better than losing search.
func rateLimit(client *redis.Client, perMinute int, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			accountID := platformmw.GetUserID(ctx)
			window := time.Now().Unix() / 60
			key := fmt.Sprintf("ratelimit:search:%s:%d", accountID, window)

			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				logger.WarnContext(ctx, "rate limiter unavailable", "err", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				client.Expire(ctx, key, time.Minute)
			}

			if count > int64(perMinute) {
				w.Header().Set("Retry-After", "60")
				respond(w, http.StatusTooManyRequests, map[string]string{
					"error":             "rate_limited",
					"error_description": "too many search requests, try again shortly",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
