package services

import (
	"context"

	"stockfolio/models"
)

// QuoteProvider resolves a current reference price for a ticker.
type QuoteProvider interface {
	GetQuote(ctx context.Context, ticker string) (*models.PriceQuote, error)
}

// CategoryProvider resolves a ticker into the closed sector set. A lookup
// that succeeds but cannot classify the ticker returns SectorUnknown with a
// nil error; only transport failures produce an error.
type CategoryProvider interface {
	GetCategory(ctx context.Context, ticker string) (models.Sector, error)
}

// SymbolSearcher resolves a ticker into a display name.
type SymbolSearcher interface {
	SearchName(ctx context.Context, ticker string) (string, error)
}

// ScannerData is the indicator payload for one scanner candidate.
type ScannerData struct {
	Price        float64
	MarketCap    int64
	MovingAvg150 float64
	Sector       string
	Name         string
}

// IndicatorProvider supplies the scanner with quote, profile, and
// moving-average data for a symbol.
type IndicatorProvider interface {
	GetScannerData(ctx context.Context, symbol string) (*ScannerData, error)
}

// PriceCache is a transient per-ticker quote cache with a fixed TTL. Entries
// older than the TTL are treated as absent. The cache is best effort: a
// failed write never surfaces to the caller.
type PriceCache interface {
	Get(ctx context.Context, ticker string) (*models.PriceQuote, bool)
	Set(ctx context.Context, ticker string, quote *models.PriceQuote)
}

// Compile-time interface verification
var _ QuoteProvider = (*YahooService)(nil)
var _ CategoryProvider = (*YahooService)(nil)
var _ SymbolSearcher = (*YahooService)(nil)
var _ QuoteProvider = (*AlpacaService)(nil)
var _ QuoteProvider = (*CachedQuoteService)(nil)
var _ IndicatorProvider = (*FinnhubService)(nil)
var _ PriceCache = (*MemoryPriceCache)(nil)
var _ PriceCache = (*RedisPriceCache)(nil)
