package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"kiezjagd_backend/internals/configs"
)

// ConnectRedis returns nil when no REDIS_ADDR is configured; callers treat a nil
// client as "no cache".
func ConnectRedis(cfg *configs.AppConfig) *redis.Client {
	if cfg.RedisAddr == "" {
		zap.L().Info("REDIS_ADDR not set, ranking cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		zap.L().Warn("redis ping failed, ranking cache disabled", zap.Error(err))
		_ = client.Close()
		return nil
	}
	zap.L().Info("redis connected", zap.String("addr", cfg.RedisAddr))
	return client
}
