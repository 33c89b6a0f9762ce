package services

import (
	"context"

	"stockfolio/models"
	"stockfolio/observability"
)

// CachedQuoteService wraps a QuoteProvider with a read-through price cache.
// There is no single-flight guarantee: concurrent misses for the same ticker
// may each issue an outbound request before either result lands in the cache.
type CachedQuoteService struct {
	provider QuoteProvider
	cache    PriceCache
}

// NewCachedQuoteService creates a caching wrapper around a quote provider.
func NewCachedQuoteService(provider QuoteProvider, cache PriceCache) *CachedQuoteService {
	return &CachedQuoteService{provider: provider, cache: cache}
}

// GetQuote returns a cached quote when fresh, otherwise fetches from the
// underlying provider and caches the result.
func (s *CachedQuoteService) GetQuote(ctx context.Context, ticker string) (*models.PriceQuote, error) {
	metrics := observability.GetMetrics()

	if quote, ok := s.cache.Get(ctx, ticker); ok {
		metrics.RecordPriceCacheHit()
		return quote, nil
	}
	metrics.RecordPriceCacheMiss()

	quote, err := s.provider.GetQuote(ctx, ticker)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, ticker, quote)
	return quote, nil
}
