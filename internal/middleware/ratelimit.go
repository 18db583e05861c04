package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles requests per key over a sliding window backed by
// Redis, so the limit holds across replicas.
type RateLimiter struct {
	redis  *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRateLimiter(r *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{redis: r, prefix: prefix, limit: limit, window: window}
}

// ByKey limits requests grouped by keyFunc (typically client IP).
func (r *RateLimiter) ByKey(keyFunc func(c *fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		redisKey := fmt.Sprintf("%s:%s", r.prefix, keyFunc(c))

		count, err := r.redis.Incr(ctx, redisKey).Result()
		if err != nil {
			// fail open: a limiter outage must not take the API down
			return c.Next()
		}
		if count == 1 {
			r.redis.Expire(ctx, redisKey, r.window)
		}
		if count > int64(r.limit) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests. Please try again later.",
			})
		}
		return c.Next()
	}
}
