package utils

import (
	"context"
	"log"
	"time"

	"carebridge/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient backs doctor-profile and discovery caching.
	CacheClient *redis.Client
	// AuthCacheClient holds short-lived token hashes for the auth middleware.
	AuthCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func mustPing(client *redis.Client, role string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", role, err)
	}
}

// InitCache connects the profile cache client.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	mustPing(CacheClient, "profile cache")
}

// GetCacheClient returns the profile cache client, connecting lazily.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitAuthCache connects the token cache client.
func InitAuthCache() {
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	mustPing(AuthCacheClient, "auth cache")
}

// GetAuthCacheClient returns the token cache client, connecting lazily.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// InitRedis connects all Redis clients eagerly at startup.
func InitRedis() {
	InitCache()
	InitAuthCache()
}
