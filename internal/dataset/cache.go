package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"civic-relevance-workers/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// CachedSource is a cache-aside wrapper: hits are served from Redis, misses
// load from the wrapped source and are written back with a TTL. Redis
// failures degrade to a direct load.
type CachedSource struct {
	next   Source
	rdb    redis.Cmdable
	ttl    time.Duration
	key    string
	logger logger.Logger
}

func NewCachedSource(next Source, rdb redis.Cmdable, prefix string, ttl time.Duration, log logger.Logger) *CachedSource {
	return &CachedSource{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		key:    prefix + ":" + next.Name(),
		logger: log,
	}
}

func (c *CachedSource) Name() string {
	return c.next.Name()
}

func (c *CachedSource) Key() string {
	return c.key
}

func (c *CachedSource) Load(ctx context.Context) (*Dataset, error) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		var ds Dataset
		if jsonErr := json.Unmarshal(raw, &ds); jsonErr == nil {
			c.logger.Debug("dataset cache hit", map[string]interface{}{"key": c.key})
			return &ds, nil
		}
		c.logger.Warn("discarding undecodable cache entry", map[string]interface{}{"key": c.key})
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("dataset cache read failed", map[string]interface{}{"key": c.key, "error": err.Error()})
	}

	ds, err := c.next.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, ds)
	return ds, nil
}

// Refresh bypasses the cache and rewrites it from the wrapped source.
func (c *CachedSource) Refresh(ctx context.Context) (*Dataset, error) {
	ds, err := c.next.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, ds)
	return ds, nil
}

func (c *CachedSource) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, c.key).Err()
}

func (c *CachedSource) store(ctx context.Context, ds *Dataset) {
	payload, err := json.Marshal(ds)
	if err != nil {
		c.logger.Warn("dataset not cacheable", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := c.rdb.Set(ctx, c.key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("dataset cache write failed", map[string]interface{}{"key": c.key, "error": err.Error()})
	}
}
