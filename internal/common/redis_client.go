package common

import (
	"context"
	"time"

	"aerocost/api/internal/config"
	"aerocost/api/internal/logging"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	logging.Info("[Redis] Initializing Redis client", "addr", cfg.Addr(), "db", cfg.DB)

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// the pool keeps retrying, so a cold Redis does not block startup
		logging.Warn("[Redis] Failed to ping Redis", "error", err)
		return client
	}

	logging.Info("[Redis] Successfully connected to Redis")
	return client
}
