package services

import (
	"context"
	"errors"
	"testing"

	"stockfolio/models"

	"github.com/shopspring/decimal"
)

type stubQuoteProvider struct {
	quote *models.PriceQuote
	err   error
	calls int
}

func (s *stubQuoteProvider) GetQuote(ctx context.Context, ticker string) (*models.PriceQuote, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.quote, nil
}

func TestCachedQuoteService_MissThenHit(t *testing.T) {
	provider := &stubQuoteProvider{quote: testQuote("AAPL", 175.5)}
	cache := NewMemoryPriceCache(DefaultPriceCacheTTL)
	service := NewCachedQuoteService(provider, cache)
	ctx := context.Background()

	quote, err := service.GetQuote(ctx, "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.CurrentPrice.Equal(decimal.NewFromFloat(175.5)) {
		t.Errorf("unexpected price: %s", quote.CurrentPrice)
	}
	if provider.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", provider.calls)
	}

	// Second lookup is served from the cache.
	quote, err = service.GetQuote(ctx, "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.CurrentPrice.Equal(decimal.NewFromFloat(175.5)) {
		t.Errorf("unexpected cached price: %s", quote.CurrentPrice)
	}
	if provider.calls != 1 {
		t.Errorf("expected cached hit to skip the provider, got %d calls", provider.calls)
	}
}

func TestCachedQuoteService_ProviderError(t *testing.T) {
	lookupErr := errors.New("quote lookup failed")
	provider := &stubQuoteProvider{err: lookupErr}
	service := NewCachedQuoteService(provider, NewMemoryPriceCache(DefaultPriceCacheTTL))

	_, err := service.GetQuote(context.Background(), "AAPL")
	if !errors.Is(err, lookupErr) {
		t.Errorf("expected provider error, got: %v", err)
	}
}

func TestCachedQuoteService_ErrorNotCached(t *testing.T) {
	provider := &stubQuoteProvider{err: errors.New("down")}
	cache := NewMemoryPriceCache(DefaultPriceCacheTTL)
	service := NewCachedQuoteService(provider, cache)
	ctx := context.Background()

	_, _ = service.GetQuote(ctx, "AAPL")

	provider.err = nil
	provider.quote = testQuote("AAPL", 180)

	quote, err := service.GetQuote(ctx, "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.CurrentPrice.Equal(decimal.NewFromInt(180)) {
		t.Errorf("expected fresh quote after earlier failure, got %s", quote.CurrentPrice)
	}
	if provider.calls != 2 {
		t.Errorf("expected 2 provider calls, got %d", provider.calls)
	}
}

func TestCachedQuoteService_DistinctTickers(t *testing.T) {
	provider := &stubQuoteProvider{quote: testQuote("AAPL", 175.5)}
	cache := NewMemoryPriceCache(DefaultPriceCacheTTL)
	service := NewCachedQuoteService(provider, cache)
	ctx := context.Background()

	if _, err := service.GetQuote(ctx, "AAPL"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	provider.quote = testQuote("MSFT", 420)
	if _, err := service.GetQuote(ctx, "MSFT"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls != 2 {
		t.Errorf("expected a provider call per ticker, got %d", provider.calls)
	}
}
