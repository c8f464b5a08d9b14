// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"fitpass/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient holds persisted user sessions (token + profile).
	SessionCacheClient *redis.Client
	// CheckoutCacheClient holds in-flight checkout state.
	CheckoutCacheClient *redis.Client
	// AuthFlowCacheClient holds transient OTP auth-flow state.
	AuthFlowCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (db %d): %v", db, err)
	}
	return client
}

// InitRedis initializes all Redis clients.
func InitRedis() {
	SessionCacheClient = newRedisClient(config.AppConfig.RedisSessionDB)
	CheckoutCacheClient = newRedisClient(config.AppConfig.RedisCheckoutDB)
	AuthFlowCacheClient = newRedisClient(config.AppConfig.RedisAuthFlowDB)
}

// GetSessionCacheClient returns the Redis client for user sessions.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		SessionCacheClient = newRedisClient(config.AppConfig.RedisSessionDB)
	}
	return SessionCacheClient
}

// GetCheckoutCacheClient returns the Redis client for checkout state.
func GetCheckoutCacheClient() *redis.Client {
	if CheckoutCacheClient == nil {
		CheckoutCacheClient = newRedisClient(config.AppConfig.RedisCheckoutDB)
	}
	return CheckoutCacheClient
}

// GetAuthFlowCacheClient returns the Redis client for OTP auth-flow state.
func GetAuthFlowCacheClient() *redis.Client {
	if AuthFlowCacheClient == nil {
		AuthFlowCacheClient = newRedisClient(config.AppConfig.RedisAuthFlowDB)
	}
	return AuthFlowCacheClient
}
