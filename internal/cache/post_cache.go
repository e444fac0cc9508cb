package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "blogapp/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPostList = "post:list:"

// PostCache caches post listings in Redis, keyed by limit.
type PostCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewPostCache returns a new PostCache.
func NewPostCache(rdb *redis.Client, ttl time.Duration) *PostCache {
	return &PostCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached listing for limit, or nil if miss.
func (c *PostCache) GetList(ctx context.Context, limit int) ([]dom.Post, error) {
	b, err := c.rdb.Get(ctx, listKey(limit)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Post
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the listing for limit.
func (c *PostCache) SetList(ctx context.Context, limit int, list []dom.Post) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(limit), b, c.ttl).Err()
}

// Invalidate removes all cached listings (called on every post write).
func (c *PostCache) Invalidate(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, keyPostList+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func listKey(limit int) string {
	return keyPostList + strconv.Itoa(limit)
}
