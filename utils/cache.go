// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"quotecompare/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AuthCacheClient is the dedicated client for authorization caching.
var AuthCacheClient *redis.Client

// InitAuthCache connects the Redis client used for caching verified tokens.
// It leaves AuthCacheClient nil when REDIS_ADDR is empty or unreachable so
// callers fall back to verifying every request.
func InitAuthCache() {
	if config.AppConfig.RedisAddr == "" {
		GetLogger().Info("Redis not configured; auth cache disabled")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Warn("Failed to connect to Redis (Auth Cache); continuing without it", zap.Error(err))
		_ = client.Close()
		return
	}
	AuthCacheClient = client
}

// GetAuthCacheClient returns the Redis client for authorization caching, or nil.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}
