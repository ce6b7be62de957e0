package middleware

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateStore counts hits per key inside a fixed window.
type RateStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisRateStore keeps counters in redis with INCR and EXPIRE.
type RedisRateStore struct {
	client *redis.Client
}

func NewRedisRateStore(client *redis.Client) *RedisRateStore {
	return &RedisRateStore{client: client}
}

// Hit increments the counter for key and starts its window on the first hit.
func (s *RedisRateStore) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// RateLimiter allows limit requests per client IP within period. A nil store or a
// store error lets the request through.
func RateLimiter(store RateStore, prefix string, limit int, period time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store == nil || limit <= 0 {
			return c.Next()
		}

		key := "rate_limit:" + prefix + ":" + c.IP()
		count, err := store.Hit(c.UserContext(), key, period)
		if err != nil {
			log.Printf("[RateLimit] store error, skipping limit: %v", err)
			return c.Next()
		}

		if count > int64(limit) {
			return fiber.NewError(fiber.StatusTooManyRequests, "Слишком много запросов, попробуйте позже")
		}

		return c.Next()
	}
}
