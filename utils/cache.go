// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"agendamento/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client. It stays nil when REDIS_ADDR is unset.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client from AppConfig.
func InitCache() error {
	if config.AppConfig.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis (Cache): %w", err)
	}
	CacheClient = client
	return nil
}

// GetCacheClient returns the generic cache client, or nil when caching is disabled.
func GetCacheClient() *redis.Client {
	return CacheClient
}
