package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is a point-in-time snapshot of the backing stores: the
// document database, the profile cache and the auth-token cache.
type HealthStatus struct {
	Mongo        bool      `json:"mongo"`
	ProfileCache bool      `json:"profileCache"`
	AuthCache    bool      `json:"authCache"`
	CheckedAt    time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func recordHealth(mongoOK, profileCacheOK, authCacheOK bool) {
	healthMu.Lock()
	currentHealth = HealthStatus{
		Mongo:        mongoOK,
		ProfileCache: profileCacheOK,
		AuthCache:    authCacheOK,
		CheckedAt:    time.Now(),
	}
	healthMu.Unlock()
}

// StartHealthMonitor pings each backing store every minute and keeps the
// in-memory snapshot current for the health endpoint.
func StartHealthMonitor(profileCache, authCache *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			recordHealth(
				mongoClient.Ping(ctx, nil) == nil,
				profileCache.Ping(ctx).Err() == nil,
				authCache.Ping(ctx).Err() == nil,
			)
		}
	}()
}
