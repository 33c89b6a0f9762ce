package services

import (
	"context"
	"fmt"
	"time"

	"stockfolio/models"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

// AlpacaService is an alternate quote provider backed by the Alpaca market
// data API. It derives the current price and change from the two most recent
// daily bars, mirroring the chart-based provider.
type AlpacaService struct {
	dataClient *marketdata.Client
}

// NewAlpacaService creates a new AlpacaService instance
func NewAlpacaService(apiKey, apiSecret string) *AlpacaService {
	dataClient := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return &AlpacaService{dataClient: dataClient}
}

// GetQuote returns the latest daily close for a ticker with the change
// against the prior close.
func (s *AlpacaService) GetQuote(ctx context.Context, ticker string) (*models.PriceQuote, error) {
	return WithCircuitBreaker(ctx, BreakerAlpaca, func() (*models.PriceQuote, error) {
		end := time.Now()
		start := end.AddDate(0, 0, -10)

		bars, err := s.dataClient.GetBars(ticker, marketdata.GetBarsRequest{
			TimeFrame: marketdata.OneDay,
			Start:     start,
			End:       end,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get bars for %s: %w", ticker, err)
		}
		if len(bars) == 0 {
			return nil, fmt.Errorf("no bars for ticker %s", ticker)
		}

		last := decimal.NewFromFloat(bars[len(bars)-1].Close)
		prev := last
		if len(bars) >= 2 {
			prev = decimal.NewFromFloat(bars[len(bars)-2].Close)
		}

		change := last.Sub(prev)
		changePct := decimal.Zero
		if !prev.IsZero() {
			changePct = change.Div(prev).Mul(decimal.NewFromInt(100))
		}

		return &models.PriceQuote{
			Ticker:        ticker,
			CurrentPrice:  last,
			Change:        change,
			ChangePercent: changePct,
			AsOf:          bars[len(bars)-1].Timestamp,
		}, nil
	})
}
