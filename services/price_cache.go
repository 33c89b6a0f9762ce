package services

import (
	"context"
	"sync"
	"time"

	"stockfolio/models"
)

// DefaultPriceCacheTTL is the freshness window for cached quotes.
const DefaultPriceCacheTTL = 10 * time.Minute

// priceCacheKey builds the storage key for a ticker's cached quote.
func priceCacheKey(ticker string) string {
	return "price-cache-" + ticker
}

type memoryCacheEntry struct {
	quote    models.PriceQuote
	storedAt time.Time
}

// MemoryPriceCache is an in-process price cache. The clock is injectable so
// expiry is testable without sleeping.
type MemoryPriceCache struct {
	mu      sync.RWMutex
	entries map[string]memoryCacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryPriceCache creates a memory price cache with the given TTL.
func NewMemoryPriceCache(ttl time.Duration) *MemoryPriceCache {
	return NewMemoryPriceCacheWithClock(ttl, time.Now)
}

// NewMemoryPriceCacheWithClock creates a memory price cache with an
// explicit clock, for tests.
func NewMemoryPriceCacheWithClock(ttl time.Duration, now func() time.Time) *MemoryPriceCache {
	if ttl <= 0 {
		ttl = DefaultPriceCacheTTL
	}
	return &MemoryPriceCache{
		entries: make(map[string]memoryCacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *MemoryPriceCache) Get(ctx context.Context, ticker string) (*models.PriceQuote, bool) {
	key := priceCacheKey(ticker)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		// Expired entries are treated as absent.
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}

	quote := entry.quote
	return &quote, true
}

func (c *MemoryPriceCache) Set(ctx context.Context, ticker string, quote *models.PriceQuote) {
	if quote == nil {
		return
	}

	c.mu.Lock()
	c.entries[priceCacheKey(ticker)] = memoryCacheEntry{
		quote:    *quote,
		storedAt: c.now(),
	}
	c.mu.Unlock()
}
