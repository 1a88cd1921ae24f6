package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// GalleryCache is the redis-backed listing cache. All operations are
// best-effort: redis being down degrades to uncached reads, never errors.
type GalleryCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewGalleryCache(client *redis.Client, log zerolog.Logger) *GalleryCache {
	return &GalleryCache{client: client, log: log}
}

func (c *GalleryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug().Err(err).Str("key", key).Msg("cache get failed")
		}
		return nil, false
	}
	return payload, true
}

func (c *GalleryCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (c *GalleryCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Debug().Err(err).Strs("keys", keys).Msg("cache delete failed")
	}
}
