package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is a current reference price for a ticker, sourced from an
// external collaborator. Quotes are cached transiently, never persisted as
// ground truth.
type PriceQuote struct {
	Ticker        string          `json:"ticker"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	AsOf          time.Time       `json:"as_of"`
}

// ScannedStock is a single scanner candidate enriched with indicator data.
type ScannedStock struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	MarketCap    int64   `json:"market_cap"`
	MovingAvg150 float64 `json:"moving_avg_150"`
	Sector       string  `json:"sector"`
	PriceToMA150 float64 `json:"price_to_ma_150"` // percent deviation from the 150-day MA
}

// ScanResult is the outcome of one scanner pass over the reference universe.
type ScanResult struct {
	Matches   []ScannedStock `json:"matches"`
	Scanned   int            `json:"scanned"`
	ScannedAt time.Time      `json:"scanned_at"`
}
