package cache

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyAgeFront      = "age"
	keyAgePostPrefix = "age:"
)

// FrontScope is the freshness scope for the listing page.
const FrontScope = keyAgeFront

// PostScope returns the freshness scope for one post.
func PostScope(id int64) string {
	return keyAgePostPrefix + strconv.FormatInt(id, 10)
}

// Freshness reports seconds since a scope was first viewed. Cosmetic
// only; implementations must never fail a page over it.
type Freshness interface {
	Age(ctx context.Context, scope string) int64
	Flush(ctx context.Context) error
}

// FreshnessCache keeps per-scope first-view epochs in Redis.
type FreshnessCache struct {
	rdb *redis.Client
}

// NewFreshnessCache returns a new FreshnessCache.
func NewFreshnessCache(rdb *redis.Client) *FreshnessCache {
	return &FreshnessCache{rdb: rdb}
}

// Age returns elapsed seconds since the scope's stored baseline. On a
// miss it stores the current epoch and returns 0; the baseline is never
// advanced on reads, so the age grows until a flush resets it. Redis
// errors degrade to 0.
func (c *FreshnessCache) Age(ctx context.Context, scope string) int64 {
	v, err := c.rdb.Get(ctx, scope).Result()
	if err == redis.Nil {
		log.Printf("age initialized: %s", scope)
		if err := c.rdb.Set(ctx, scope, strconv.FormatInt(time.Now().Unix(), 10), 0).Err(); err != nil {
			log.Printf("freshness set %s: %v", scope, err)
		}
		return 0
	}
	if err != nil {
		log.Printf("freshness get %s: %v", scope, err)
		return 0
	}
	baseline, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	age := time.Now().Unix() - baseline
	if age < 0 {
		age = 0
	}
	return age
}

// Flush removes every age key so the next view of each scope starts at 0.
func (c *FreshnessCache) Flush(ctx context.Context) error {
	if err := c.rdb.Del(ctx, keyAgeFront).Err(); err != nil {
		return err
	}
	iter := c.rdb.Scan(ctx, 0, keyAgePostPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
