package ical

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "staycal:ota:"

// RedisFeedCache is a FeedCache variant that shares fetched feeds across
// instances through Redis. Same contract: TTL-bounded entries, failures
// cached as empty, ErrFeedUnavailable on fetch failure. Redis being down
// degrades to a fetch per call, never to an error.
type RedisFeedCache struct {
	rdb   *redis.Client
	ttl   time.Duration
	fetch FetchFunc
}

func NewRedisFeedCache(rdb *redis.Client, ttl time.Duration, fetch FetchFunc) *RedisFeedCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisFeedCache{rdb: rdb, ttl: ttl, fetch: fetch}
}

func (c *RedisFeedCache) GetEvents(ctx context.Context, url string) ([]Event, error) {
	if url == "" {
		return nil, nil
	}

	key := redisKeyPrefix + url
	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var events []Event
		if err := json.Unmarshal(raw, &events); err == nil {
			return events, nil
		}
	} else if err != redis.Nil {
		log.Printf("ota_cache redis_get_failed url=%s err=%v", url, err)
	}

	body, err := c.fetch(ctx, url)
	if err != nil {
		c.put(ctx, key, []Event{})
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	events := Parse(string(body))
	c.put(ctx, key, events)
	return events, nil
}

func (c *RedisFeedCache) put(ctx context.Context, key string, events []Event) {
	raw, err := json.Marshal(events)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("ota_cache redis_set_failed key=%s err=%v", key, err)
	}
}
