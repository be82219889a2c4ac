package viewcache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"invoice-dashboard-backend/internal/telemetry"
)

// InvoiceListingView is the dashboard view backed by the invoice listing
// endpoints. Invoice writes invalidate it, and successful form submissions
// redirect to it.
const InvoiceListingView = "/dashboard/invoices"

const keyPrefix = "view:"

// Invalidator is the write-side of the view cache.
type Invalidator interface {
	Invalidate(ctx context.Context, view string) error
}

// Cache stores rendered view payloads in Redis keyed by view path.
type Cache struct {
	client  *redis.Client
	logger  *zap.Logger
	metrics *telemetry.Metrics
}

// NewCache creates a view cache backed by the given Redis client.
func NewCache(client *redis.Client, logger *zap.Logger, metrics *telemetry.Metrics) *Cache {
	return &Cache{client: client, logger: logger, metrics: metrics}
}

// Key builds the cache key for a view and its canonical query string.
func Key(view, query string) string {
	if query == "" {
		return keyPrefix + view
	}
	return keyPrefix + view + "?" + query
}

// Invalidate removes every cached entry under the view's key prefix.
func (c *Cache) Invalidate(ctx context.Context, view string) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+view+"*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan view cache keys: %w", err)
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete view cache keys: %w", err)
		}
	}

	c.metrics.ObserveViewCache(view, "invalidate")
	return nil
}

// get reads a cached payload. Read failures are treated as misses so the
// request falls through to the handler.
func (c *Cache) get(ctx context.Context, view, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.metrics.ObserveViewCache(view, "miss")
		return nil, false
	}
	if err != nil {
		c.logger.Warn("view cache read failed", zap.String("view", view), zap.Error(err))
		c.metrics.ObserveViewCache(view, "miss")
		return nil, false
	}

	c.metrics.ObserveViewCache(view, "hit")
	return payload, true
}

// set stores a payload. Write failures only lose the cache entry.
func (c *Cache) set(ctx context.Context, view, key string, payload []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		c.logger.Warn("view cache write failed", zap.String("view", view), zap.Error(err))
	}
}
