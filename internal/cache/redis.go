package cache

import (
	"context"
	"fmt"
	"time"

	"biobank-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	capacityOverviewKey = "zones:overview"
	capacityOverviewTTL = 30 * time.Second
)

var client *redis.Client

// Init initializes the Redis connection. The cache degrades gracefully:
// every accessor below is a no-op when the client is nil.
func Init(cfg *config.Config) error {
	host := cfg.Redis.Host
	if host == "" {
		host = "redis"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetCachedCapacityOverview returns the cached zone snapshot if available
func GetCachedCapacityOverview(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, capacityOverviewKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheCapacityOverview caches the zone snapshot for dashboard reads
func CacheCapacityOverview(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, capacityOverviewKey, data, capacityOverviewTTL)
}

// InvalidateCapacityOverview drops the snapshot after any zone mutation
func InvalidateCapacityOverview(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, capacityOverviewKey)
}
