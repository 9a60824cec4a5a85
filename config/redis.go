package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to Redis when REDIS_ADDR is configured. Returns nil when
// it is not; callers treat a nil client as "feature disabled" (the number
// generator then falls back to random digits with retry).
func InitRedis(cfg AppConfig) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: EnvOrDefault("REDIS_PASSWORD", ""),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
