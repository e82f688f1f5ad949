package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// UnreadCachePrefix is the key prefix for per-user unread badge counts
	UnreadCachePrefix = "notifications:unread:"

	// UnreadCacheTTL bounds staleness if an invalidation is ever missed
	UnreadCacheTTL = 15 * time.Minute
)

// UnreadCache caches the unread-notification count shown as a badge. The
// count is display-only, so a briefly stale value is acceptable; writers
// invalidate instead of updating.
type UnreadCache interface {
	// Get returns the cached count. found=false on a cache miss.
	Get(ctx context.Context, userID string) (count int64, found bool, err error)

	// Set stores the count with a TTL.
	Set(ctx context.Context, userID string, count int64) error

	// Invalidate drops the cached count. Safe to call for a missing key.
	Invalidate(ctx context.Context, userID string) error
}

// RedisUnreadCache implements UnreadCache on plain Redis strings.
type RedisUnreadCache struct {
	client *redis.Client
}

// NewUnreadCache creates an UnreadCache backed by Redis.
func NewUnreadCache(client *redis.Client) UnreadCache {
	return &RedisUnreadCache{client: client}
}

func unreadKey(userID string) string {
	return UnreadCachePrefix + userID
}

func (c *RedisUnreadCache) Get(ctx context.Context, userID string) (int64, bool, error) {
	count, err := c.client.Get(ctx, unreadKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get unread count: %w", err)
	}
	return count, true, nil
}

func (c *RedisUnreadCache) Set(ctx context.Context, userID string, count int64) error {
	if err := c.client.Set(ctx, unreadKey(userID), count, UnreadCacheTTL).Err(); err != nil {
		return fmt.Errorf("set unread count: %w", err)
	}
	return nil
}

func (c *RedisUnreadCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, unreadKey(userID)).Err(); err != nil {
		return fmt.Errorf("invalidate unread count: %w", err)
	}
	return nil
}
