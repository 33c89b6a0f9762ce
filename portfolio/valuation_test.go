package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"stockfolio/models"
	"stockfolio/repository"
)

type stubQuoteProvider struct {
	prices map[string]float64
	err    error
}

func (s *stubQuoteProvider) GetQuote(ctx context.Context, ticker string) (*models.PriceQuote, error) {
	if s.err != nil {
		return nil, s.err
	}
	price, ok := s.prices[ticker]
	if !ok {
		return nil, errors.New("unknown ticker")
	}
	return &models.PriceQuote{Ticker: ticker, CurrentPrice: decimal.NewFromFloat(price)}, nil
}

func position(t *testing.T, ticker string, price float64, qty int64, sector models.Sector) models.Position {
	t.Helper()
	return models.Position{
		Ticker:        ticker,
		PurchaseDate:  date(t, "2024-01-01"),
		PurchasePrice: decimal.NewFromFloat(price),
		Quantity:      qty,
		Sector:        sector,
		Active:        true,
	}
}

func TestEngine_Summary(t *testing.T) {
	quotes := &stubQuoteProvider{prices: map[string]float64{"AAPL": 175.50}}
	engine := NewEngine(quotes)

	open := []models.Position{position(t, "AAPL", 150, 10, models.SectorTechnology)}
	summary, resolutions := engine.Summary(context.Background(), open, nil)

	if !summary.TotalInvested.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected invested 1500, got %s", summary.TotalInvested)
	}
	if !summary.CurrentValue.Equal(decimal.NewFromInt(1755)) {
		t.Errorf("expected current value 1755, got %s", summary.CurrentValue)
	}
	if !summary.TotalProfit.Equal(decimal.NewFromInt(255)) {
		t.Errorf("expected profit 255, got %s", summary.TotalProfit)
	}
	if !summary.TotalProfitPercentage.Equal(decimal.NewFromInt(17)) {
		t.Errorf("expected 17%%, got %s", summary.TotalProfitPercentage)
	}
	if summary.OpenPositions != 1 || summary.ClosedPositions != 0 {
		t.Errorf("unexpected counts: %+v", summary)
	}

	if len(resolutions) != 1 {
		t.Fatalf("expected 1 resolution, got %d", len(resolutions))
	}
	if resolutions[0].Fallback {
		t.Error("expected live quote, not fallback")
	}
	if !resolutions[0].Price.Equal(decimal.NewFromFloat(175.5)) {
		t.Errorf("unexpected resolved price: %s", resolutions[0].Price)
	}
}

func TestEngine_Summary_FallbackOnLookupFailure(t *testing.T) {
	engine := NewEngine(&stubQuoteProvider{err: errors.New("chart endpoint down")})

	open := []models.Position{position(t, "AAPL", 150, 10, models.SectorTechnology)}
	summary, resolutions := engine.Summary(context.Background(), open, nil)

	// Valued at purchase price: zero unrealized profit.
	if !summary.CurrentValue.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected fallback value 1500, got %s", summary.CurrentValue)
	}
	if !summary.TotalProfit.IsZero() {
		t.Errorf("expected zero profit under fallback pricing, got %s", summary.TotalProfit)
	}
	if !resolutions[0].Fallback {
		t.Error("expected fallback resolution")
	}
	if !resolutions[0].Price.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected purchase price fallback, got %s", resolutions[0].Price)
	}
}

func TestEngine_Summary_RealizedProfitIsCumulative(t *testing.T) {
	engine := NewEngine(&stubQuoteProvider{prices: map[string]float64{"MSFT": 410}})

	open := []models.Position{position(t, "MSFT", 400, 2, models.SectorTechnology)}
	closed := []models.ClosedPosition{
		{TotalProfit: decimal.NewFromInt(100)},
		{TotalProfit: decimal.NewFromInt(-30)},
	}

	summary, _ := engine.Summary(context.Background(), open, closed)

	// 20 unrealized + 100 - 30 realized.
	if !summary.TotalProfit.Equal(decimal.NewFromInt(90)) {
		t.Errorf("expected profit 90, got %s", summary.TotalProfit)
	}
	if summary.ClosedPositions != 2 {
		t.Errorf("expected 2 closed positions, got %d", summary.ClosedPositions)
	}
}

func TestEngine_Summary_ZeroInvested(t *testing.T) {
	engine := NewEngine(&stubQuoteProvider{})

	tests := []struct {
		name   string
		closed []models.ClosedPosition
	}{
		{"empty closed set", nil},
		{"with realized profit", []models.ClosedPosition{{TotalProfit: decimal.NewFromInt(100)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, _ := engine.Summary(context.Background(), nil, tt.closed)
			if !summary.TotalProfitPercentage.IsZero() {
				t.Errorf("expected zero percentage with nothing invested, got %s", summary.TotalProfitPercentage)
			}
		})
	}
}

func TestEngine_Summary_AfterSellScenario(t *testing.T) {
	store := repository.NewMemoryStore()
	manager := NewManager(store, nil, nil)
	engine := NewEngine(&stubQuoteProvider{prices: map[string]float64{"AAPL": 175.50}})
	ctx := context.Background()

	opened := openTestPosition(t, manager, "AAPL", 150, 10)
	closed, err := manager.Sell(ctx, opened.ID, date(t, "2024-02-01"), decimal.NewFromInt(160))
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if closed.HoldingDays != 31 {
		t.Errorf("expected 31 holding days, got %d", closed.HoldingDays)
	}

	open, _ := store.LoadOpen(ctx)
	closedList, _ := store.LoadClosed(ctx)
	summary, _ := engine.Summary(ctx, open, closedList)

	if !summary.TotalInvested.IsZero() {
		t.Errorf("expected zero invested, got %s", summary.TotalInvested)
	}
	if !summary.TotalProfit.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected realized profit 100, got %s", summary.TotalProfit)
	}
	if !summary.TotalProfitPercentage.IsZero() {
		t.Errorf("expected zero percentage with no open positions, got %s", summary.TotalProfitPercentage)
	}
}

func TestEngine_SectorDistribution(t *testing.T) {
	engine := NewEngine(nil)

	open := []models.Position{
		position(t, "AAPL", 100, 10, models.SectorTechnology),
		position(t, "JPM", 100, 10, models.SectorFinancial),
	}

	weights := engine.SectorDistribution(open)
	if len(weights) != 2 {
		t.Fatalf("expected 2 sectors, got %d", len(weights))
	}

	// Equal notional: 50/50 split in first-seen order.
	if weights[0].Sector != models.SectorTechnology || weights[1].Sector != models.SectorFinancial {
		t.Errorf("expected first-seen order on ties, got %v then %v", weights[0].Sector, weights[1].Sector)
	}
	for _, w := range weights {
		if !w.Percentage.Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected 50%% for %v, got %s", w.Sector, w.Percentage)
		}
		if w.Positions != 1 {
			t.Errorf("expected 1 position for %v, got %d", w.Sector, w.Positions)
		}
	}
}

func TestEngine_SectorDistribution_DescendingByShare(t *testing.T) {
	engine := NewEngine(nil)

	open := []models.Position{
		position(t, "XOM", 100, 1, models.SectorEnergy),
		position(t, "AAPL", 100, 2, models.SectorTechnology),
		position(t, "MSFT", 100, 1, models.SectorTechnology),
	}

	weights := engine.SectorDistribution(open)
	if len(weights) != 2 {
		t.Fatalf("expected 2 sectors, got %d", len(weights))
	}

	if weights[0].Sector != models.SectorTechnology {
		t.Errorf("expected technology first, got %v", weights[0].Sector)
	}
	if weights[0].Positions != 2 {
		t.Errorf("expected 2 technology positions, got %d", weights[0].Positions)
	}
	if !weights[0].Notional.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected notional 300, got %s", weights[0].Notional)
	}
	if !weights[0].Percentage.Equal(decimal.NewFromInt(75)) {
		t.Errorf("expected 75%%, got %s", weights[0].Percentage)
	}
	if !weights[1].Percentage.Equal(decimal.NewFromInt(25)) {
		t.Errorf("expected 25%%, got %s", weights[1].Percentage)
	}
}

func TestEngine_SectorDistribution_Empty(t *testing.T) {
	engine := NewEngine(nil)
	if weights := engine.SectorDistribution(nil); len(weights) != 0 {
		t.Errorf("expected no weights for empty portfolio, got %d", len(weights))
	}
}
