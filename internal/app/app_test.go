package app

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stockfolio/config"
	"stockfolio/models"
	"stockfolio/portfolio"
	"stockfolio/repository"
)

type fixedQuotes struct {
	price float64
}

func (q *fixedQuotes) GetQuote(ctx context.Context, ticker string) (*models.PriceQuote, error) {
	return &models.PriceQuote{Ticker: ticker, CurrentPrice: decimal.NewFromFloat(q.price)}, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	store := repository.NewMemoryStore()
	manager := portfolio.NewManager(store, nil, nil)
	engine := portfolio.NewEngine(&fixedQuotes{price: 175.5})
	return New(config.NewTestConfig(), manager, engine, nil, nil, nil)
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestApp_PositionLifecycle(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	position, err := a.OpenPosition(ctx, "AAPL", "Apple Inc.", date(t, "2024-01-01"), decimal.NewFromInt(150), 10)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	open, err := a.GetOpenPositions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("expected 1 open position, got %d", len(open))
	}

	closed, err := a.SellPosition(ctx, position.ID, date(t, "2024-02-01"), decimal.NewFromInt(160))
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if !closed.TotalProfit.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected profit 100, got %s", closed.TotalProfit)
	}

	annotated, err := a.AnnotatePosition(ctx, closed.ID, "took profits")
	if err != nil {
		t.Fatalf("annotate failed: %v", err)
	}
	if annotated.Note != "took profits" {
		t.Errorf("unexpected note: %q", annotated.Note)
	}

	if err := a.DeleteClosedPosition(ctx, closed.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	closedList, _ := a.GetClosedPositions(ctx)
	if len(closedList) != 0 {
		t.Errorf("expected empty closed ledger, got %d", len(closedList))
	}
}

func TestApp_ComputeSummary(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	if _, err := a.OpenPosition(ctx, "AAPL", "Apple Inc.", date(t, "2024-01-01"), decimal.NewFromInt(150), 10); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	summary, resolutions, err := a.ComputeSummary(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.CurrentValue.Equal(decimal.NewFromInt(1755)) {
		t.Errorf("expected current value 1755, got %s", summary.CurrentValue)
	}
	if len(resolutions) != 1 || resolutions[0].Fallback {
		t.Errorf("expected one live resolution, got %+v", resolutions)
	}
}

func TestApp_LatestSummary_ComputesWithoutRefresher(t *testing.T) {
	a := newTestApp(t)

	snapshot, err := a.LatestSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot == nil {
		t.Fatal("expected an on-demand snapshot")
	}
	if snapshot.ComputedAt.IsZero() {
		t.Error("expected a computed-at timestamp")
	}
}

func TestApp_RunScan_NotConfigured(t *testing.T) {
	a := newTestApp(t)

	if _, err := a.RunScan(context.Background()); err == nil {
		t.Error("expected error without a configured scanner")
	}
}

func TestApp_SectorDistribution(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	if _, err := a.OpenPosition(ctx, "AAPL", "Apple Inc.", date(t, "2024-01-01"), decimal.NewFromInt(100), 10); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	weights, err := a.SectorDistribution(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(weights) != 1 {
		t.Fatalf("expected 1 sector, got %d", len(weights))
	}
	if weights[0].Sector != models.SectorUnknown {
		t.Errorf("expected unknown sector without a category provider, got %v", weights[0].Sector)
	}
}
