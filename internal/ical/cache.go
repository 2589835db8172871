package ical

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// ErrFeedUnavailable marks a fetch that failed (network error, timeout,
// non-2xx). Callers are expected to treat it as "no external events"
// rather than an error; the sentinel exists so tests and logs can tell a
// tolerated failure from a genuinely empty feed.
var ErrFeedUnavailable = errors.New("ota feed unavailable")

const (
	DefaultTTL          = 15 * time.Minute
	DefaultFetchTimeout = 8 * time.Second
)

// FetchFunc retrieves the raw feed body for a URL.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// FeedCache amortizes network fetches of per-room iCal feeds. Entries
// expire by age only; the key set is unbounded, which is acceptable
// because there is one URL per OTA-listed room. Failed fetches are cached
// as empty so an unreachable feed is not hammered within the TTL window.
type FeedCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	fetch   FetchFunc
	now     func() time.Time
	entries map[string]cacheEntry
}

type cacheEntry struct {
	fetchedAt time.Time
	events    []Event
}

func NewFeedCache(ttl, fetchTimeout time.Duration) *FeedCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return NewFeedCacheWithFetcher(ttl, HTTPFetcher(fetchTimeout))
}

func NewFeedCacheWithFetcher(ttl time.Duration, fetch FetchFunc) *FeedCache {
	return &FeedCache{
		ttl:     ttl,
		fetch:   fetch,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// GetEvents returns the busy events for a feed URL, refreshing the cache
// entry when it is older than the TTL. An empty URL yields no events and
// no network call. On fetch failure the empty result is cached and the
// error wraps ErrFeedUnavailable.
func (c *FeedCache) GetEvents(ctx context.Context, url string) ([]Event, error) {
	if url == "" {
		return nil, nil
	}

	now := c.now()

	c.mu.Lock()
	if e, ok := c.entries[url]; ok && now.Sub(e.fetchedAt) < c.ttl {
		events := e.events
		c.mu.Unlock()
		return events, nil
	}
	c.mu.Unlock()

	body, err := c.fetch(ctx, url)
	if err != nil {
		c.store(url, now, nil)
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	events := Parse(string(body))
	c.store(url, now, events)
	return events, nil
}

func (c *FeedCache) store(url string, fetchedAt time.Time, events []Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = cacheEntry{fetchedAt: fetchedAt, events: events}
}

// HTTPFetcher returns the default FetchFunc: a plain GET bounded by the
// given timeout.
func HTTPFetcher(timeout time.Duration) FetchFunc {
	client := &http.Client{Timeout: timeout}
	return func(ctx context.Context, url string) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
}
