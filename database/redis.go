package database

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NewRedisClient initializes and returns a Redis client. A nil client is
// returned when Redis is unreachable; callers degrade to uncached reads.
func NewRedisClient(redisURL string) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		zap.L().Warn("Invalid Redis URL, caching disabled", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		zap.L().Warn("Failed to connect to Redis, caching disabled", zap.Error(err))
		return nil
	}

	zap.L().Info("Connected to Redis")
	return client
}
