package storage

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

var Redis *redis.Client

func InitializeRedis() {
	// Get Redis URL from environment, fallback to localhost for development
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
		log.Println("REDIS_URL not set, using localhost:6379 (development mode)")
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: "",
		DB:       0,
	})

	log.Println("Redis initialized with address:", redisURL)
}

// CacheGet returns the cached value for key, or "" when Redis is down,
// unconfigured or the key is missing. The calendar is display-only and
// tolerates transient staleness, so cache failures degrade silently to a
// fresh projection.
func CacheGet(ctx context.Context, key string) string {
	if Redis == nil {
		return ""
	}
	value, err := Redis.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return value
}

// CacheSet stores value under key with a TTL, best-effort.
func CacheSet(ctx context.Context, key, value string, ttl time.Duration) {
	if Redis == nil {
		return
	}
	if err := Redis.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Println("cache set failed:", err)
	}
}

// CacheInvalidate drops keys matching pattern, used after reservation
// writes so the calendar never serves a stale month for long.
func CacheInvalidate(ctx context.Context, pattern string) {
	if Redis == nil {
		return
	}
	keys, err := Redis.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := Redis.Del(ctx, keys...).Err(); err != nil {
		log.Println("cache invalidate failed:", err)
	}
}
