package portfolio

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"stockfolio/models"
	"stockfolio/observability"
	"stockfolio/services"
)

// QuoteResolution records how one position's live price was obtained: from a
// fresh quote or, when the lookup failed, from the purchase price.
type QuoteResolution struct {
	Ticker   string          `json:"ticker"`
	Price    decimal.Decimal `json:"price"`
	Fallback bool            `json:"fallback"`
}

// Engine computes portfolio summaries. It never mutates the ledger and is
// safe to call repeatedly and concurrently.
type Engine struct {
	quotes services.QuoteProvider
}

// NewEngine creates a valuation engine over the given quote provider.
func NewEngine(quotes services.QuoteProvider) *Engine {
	return &Engine{quotes: quotes}
}

// Summary values the open positions at live prices and folds in realized
// profit from every closed position. A failed price lookup falls back to the
// position's purchase price, contributing zero unrealized profit; each
// resolution reports whether the fallback was used.
func (e *Engine) Summary(ctx context.Context, open []models.Position, closed []models.ClosedPosition) (models.PortfolioSummary, []QuoteResolution) {
	start := time.Now()

	invested := decimal.Zero
	currentValue := decimal.Zero
	resolutions := make([]QuoteResolution, 0, len(open))

	for i := range open {
		position := &open[i]
		invested = invested.Add(position.CostBasis())

		resolution := e.resolvePrice(ctx, position)
		currentValue = currentValue.Add(position.MarketValue(resolution.Price))
		resolutions = append(resolutions, resolution)
	}

	profit := currentValue.Sub(invested)
	for i := range closed {
		profit = profit.Add(closed[i].TotalProfit)
	}

	profitPct := decimal.Zero
	if !invested.IsZero() {
		profitPct = profit.Div(invested).Mul(decimal.NewFromInt(100))
	}

	observability.GetMetrics().RecordSummary(time.Since(start))

	return models.PortfolioSummary{
		TotalInvested:         invested,
		CurrentValue:          currentValue,
		TotalProfit:           profit,
		TotalProfitPercentage: profitPct,
		OpenPositions:         len(open),
		ClosedPositions:       len(closed),
	}, resolutions
}

// SectorDistribution groups open positions by sector using purchase-price
// notional value. Sectors are ordered by descending share; equal shares keep
// the order the sectors were first seen in.
func (e *Engine) SectorDistribution(open []models.Position) []models.SectorWeight {
	order := make(map[models.Sector]int)
	weights := make([]models.SectorWeight, 0)
	total := decimal.Zero

	for i := range open {
		position := &open[i]
		notional := position.CostBasis()
		total = total.Add(notional)

		idx, seen := order[position.Sector]
		if !seen {
			idx = len(weights)
			order[position.Sector] = idx
			weights = append(weights, models.SectorWeight{Sector: position.Sector, Notional: decimal.Zero})
		}
		weights[idx].Positions++
		weights[idx].Notional = weights[idx].Notional.Add(notional)
	}

	if !total.IsZero() {
		for i := range weights {
			weights[i].Percentage = weights[i].Notional.Div(total).Mul(decimal.NewFromInt(100))
		}
	}

	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].Notional.GreaterThan(weights[j].Notional)
	})

	return weights
}

func (e *Engine) resolvePrice(ctx context.Context, position *models.Position) QuoteResolution {
	if e.quotes != nil {
		quote, err := e.quotes.GetQuote(ctx, position.Ticker)
		if err == nil && quote != nil {
			return QuoteResolution{Ticker: position.Ticker, Price: quote.CurrentPrice}
		}
		if err != nil {
			observability.Warn("price lookup failed, valuing at purchase price",
				"ticker", position.Ticker,
				"error", err)
		}
	}

	observability.GetMetrics().RecordSummaryFallback(position.Ticker)
	return QuoteResolution{
		Ticker:   position.Ticker,
		Price:    position.PurchasePrice,
		Fallback: true,
	}
}
