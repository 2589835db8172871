package ical

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingFetcher struct {
	calls int
	body  []byte
	err   error
}

func (f *countingFetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	return f.body, f.err
}

func TestFeedCache_EmptyURLSkipsNetwork(t *testing.T) {
	f := &countingFetcher{}
	c := NewFeedCacheWithFetcher(DefaultTTL, f.fetch)

	events, err := c.GetEvents(context.Background(), "")

	assert.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, 0, f.calls)
}

func TestFeedCache_SecondCallWithinTTLUsesCache(t *testing.T) {
	f := &countingFetcher{body: []byte(airbnbStyleFeed)}
	c := NewFeedCacheWithFetcher(15*time.Minute, f.fetch)

	first, err := c.GetEvents(context.Background(), "https://ota.example/cal.ics")
	assert.NoError(t, err)
	second, err := c.GetEvents(context.Background(), "https://ota.example/cal.ics")
	assert.NoError(t, err)

	assert.Equal(t, 1, f.calls)
	assert.Equal(t, first, second)
	assert.Len(t, second, 1)
}

func TestFeedCache_ExpiredEntryRefetches(t *testing.T) {
	f := &countingFetcher{body: []byte(airbnbStyleFeed)}
	c := NewFeedCacheWithFetcher(15*time.Minute, f.fetch)

	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, _ = c.GetEvents(context.Background(), "https://ota.example/cal.ics")
	now = now.Add(16 * time.Minute)
	_, _ = c.GetEvents(context.Background(), "https://ota.example/cal.ics")

	assert.Equal(t, 2, f.calls)
}

func TestFeedCache_FailureIsCachedAndTyped(t *testing.T) {
	f := &countingFetcher{err: errors.New("connection refused")}
	c := NewFeedCacheWithFetcher(15*time.Minute, f.fetch)

	events, err := c.GetEvents(context.Background(), "https://ota.example/down.ics")
	assert.ErrorIs(t, err, ErrFeedUnavailable)
	assert.Empty(t, events)

	// Within the TTL the failure is served from cache: no retry storm
	// against an unreachable feed.
	events, err = c.GetEvents(context.Background(), "https://ota.example/down.ics")
	assert.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, 1, f.calls)
}

func TestFeedCache_URLsAreIndependent(t *testing.T) {
	f := &countingFetcher{body: []byte(airbnbStyleFeed)}
	c := NewFeedCacheWithFetcher(15*time.Minute, f.fetch)

	_, _ = c.GetEvents(context.Background(), "https://ota.example/a.ics")
	_, _ = c.GetEvents(context.Background(), "https://ota.example/b.ics")

	assert.Equal(t, 2, f.calls)
}
