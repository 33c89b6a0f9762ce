package services

import (
	"context"
	"encoding/json"
	"time"

	"stockfolio/models"
	"stockfolio/observability"

	"github.com/redis/go-redis/v9"
)

// RedisPriceCache is a Redis-backed price cache shared across processes.
// Expiry is delegated to Redis key TTLs. Cache failures degrade to a miss.
type RedisPriceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// redisCacheEntry is the persisted cache record: the quote plus the store
// timestamp in unix milliseconds.
type redisCacheEntry struct {
	Price     models.PriceQuote `json:"price"`
	Timestamp int64             `json:"timestamp"`
}

// NewRedisPriceCache creates a Redis price cache with the given TTL.
func NewRedisPriceCache(rdb *redis.Client, ttl time.Duration) *RedisPriceCache {
	if ttl <= 0 {
		ttl = DefaultPriceCacheTTL
	}
	return &RedisPriceCache{rdb: rdb, ttl: ttl}
}

func (c *RedisPriceCache) Get(ctx context.Context, ticker string) (*models.PriceQuote, bool) {
	data, err := c.rdb.Get(ctx, priceCacheKey(ticker)).Bytes()
	if err != nil {
		if err != redis.Nil {
			observability.Warn("price cache read failed", "ticker", ticker, "error", err)
		}
		return nil, false
	}

	var entry redisCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	return &entry.Price, true
}

func (c *RedisPriceCache) Set(ctx context.Context, ticker string, quote *models.PriceQuote) {
	if quote == nil {
		return
	}

	entry := redisCacheEntry{
		Price:     *quote,
		Timestamp: time.Now().UnixMilli(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, priceCacheKey(ticker), data, c.ttl).Err(); err != nil {
		observability.Warn("price cache write failed", "ticker", ticker, "error", err)
	}
}
