package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ViewCache is a JSON-backed Redis cache for one value type T. Every key is
// namespaced by prefix. A TTL of 0 stores keys without expiry.
//
// Failures never propagate: a broken cache degrades to a miss and is logged.
type ViewCache[T any] struct {
	client goredis.Cmdable
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

func NewViewCache[T any](client goredis.Cmdable, prefix string, ttl time.Duration, log *slog.Logger) *ViewCache[T] {
	return &ViewCache[T]{client: client, prefix: prefix, ttl: ttl, log: log}
}

func (c *ViewCache[T]) key(id string) string {
	return c.prefix + id
}

// Get returns the cached value for id, or (nil, false) on a miss or any error.
func (c *ViewCache[T]) Get(ctx context.Context, id string) (*T, bool) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.WarnContext(ctx, "view cache read failed", "key", c.key(id), "error", err)
		}
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.log.WarnContext(ctx, "view cache entry undecodable", "key", c.key(id), "error", err)
		return nil, false
	}
	return &v, true
}

func (c *ViewCache[T]) Set(ctx context.Context, id string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.WarnContext(ctx, "view cache marshal failed", "key", c.key(id), "error", err)
		return
	}
	if err := c.client.Set(ctx, c.key(id), data, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "view cache write failed", "key", c.key(id), "error", err)
	}
}

func (c *ViewCache[T]) Delete(ctx context.Context, id string) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.log.WarnContext(ctx, "view cache delete failed", "key", c.key(id), "error", err)
	}
}
