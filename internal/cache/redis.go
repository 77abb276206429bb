package cache

import (
	"context"
	"time"

	"boutique-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes the Redis connection. On failure the client stays
// nil and every cache call degrades to a miss, so the app keeps working
// without Redis.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
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

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// ============================================
// Entity-Based Cache Invalidators
// ============================================

// InvalidateClientCaches clears client lists and search results.
// Called when: CreateClient, UpdateClient, DeleteClient
func InvalidateClientCaches(ctx context.Context) {
	InvalidatePattern(ctx, "clients:*")
	InvalidatePattern(ctx, "analytics:*")
}

// InvalidateProductCaches clears product lists and per-product pages.
// Called when: CreateProduct, UpdateProduct, DeleteProduct
func InvalidateProductCaches(ctx context.Context) {
	InvalidatePattern(ctx, "products:*")
	InvalidatePattern(ctx, "analytics:*")
}

// InvalidatePurchaseCaches clears purchase lists and everything derived
// from them. Payments reference purchases, so their lists go too.
// Called when: CreateOrder, UpdatePurchase, DeletePurchase, status updates
func InvalidatePurchaseCaches(ctx context.Context) {
	InvalidatePattern(ctx, "purchases:*")
	InvalidatePattern(ctx, "payments:*")
	InvalidatePattern(ctx, "analytics:*")
}

// InvalidatePaymentCaches clears payment lists and analytics.
// Called when: CreatePayment, DeletePayment
func InvalidatePaymentCaches(ctx context.Context) {
	InvalidatePattern(ctx, "payments:*")
	InvalidatePattern(ctx, "purchases:*")
	InvalidatePattern(ctx, "analytics:*")
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
