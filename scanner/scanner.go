package scanner

import (
	"context"
	"math"
	"sync"
	"time"

	"stockfolio/models"
	"stockfolio/observability"
	"stockfolio/services"
)

// Config controls the filter rule and fetch concurrency.
type Config struct {
	MaxDeviationPct float64 // max |price deviation from the 150-day MA| in percent
	MarketCapMin    int64   // minimum market cap in dollars
	MaxConcurrent   int     // concurrent indicator fetches
	FetchTimeout    time.Duration
}

// DefaultConfig matches the dashboard rule: within 5% of the 150-day moving
// average and at least $1B of market cap.
var DefaultConfig = Config{
	MaxDeviationPct: 5,
	MarketCapMin:    1_000_000_000,
	MaxConcurrent:   8,
	FetchTimeout:    2 * time.Minute,
}

// Scanner filters a fixed reference universe against a moving-average and
// market-cap rule using per-symbol indicator data.
type Scanner struct {
	provider services.IndicatorProvider
	universe []ReferenceStock
	cfg      Config
}

// New creates a scanner over the given indicator provider. A nil universe
// uses the default reference list.
func New(provider services.IndicatorProvider, universe []ReferenceStock, cfg Config) *Scanner {
	if universe == nil {
		universe = DefaultUniverse
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultConfig.MaxConcurrent
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultConfig.FetchTimeout
	}
	return &Scanner{
		provider: provider,
		universe: universe,
		cfg:      cfg,
	}
}

// Scan fetches indicator data for every symbol in the universe and keeps
// those within the deviation and market-cap bounds. A failed fetch excludes
// the symbol without failing the scan. Matches keep universe order.
func (s *Scanner) Scan(ctx context.Context) (*models.ScanResult, error) {
	startTime := time.Now()

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	type scanOutcome struct {
		index int
		stock *models.ScannedStock
	}

	results := make(chan scanOutcome, len(s.universe))
	sem := make(chan struct{}, s.cfg.MaxConcurrent)
	var wg sync.WaitGroup

	for i, ref := range s.universe {
		wg.Add(1)
		go func(idx int, ref ReferenceStock) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-fetchCtx.Done():
				results <- scanOutcome{index: idx}
				return
			}

			stock := s.scanSymbol(fetchCtx, ref)
			results <- scanOutcome{index: idx, stock: stock}
		}(i, ref)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	byIndex := make([]*models.ScannedStock, len(s.universe))
	for outcome := range results {
		byIndex[outcome.index] = outcome.stock
	}

	matches := make([]models.ScannedStock, 0, len(s.universe))
	for _, stock := range byIndex {
		if stock != nil {
			matches = append(matches, *stock)
		}
	}

	duration := time.Since(startTime)
	observability.GetMetrics().RecordScannerRun(duration, len(matches))
	observability.Info("scan completed",
		"scanned", len(s.universe),
		"matches", len(matches),
		"duration_ms", duration.Milliseconds())

	return &models.ScanResult{
		Matches:   matches,
		Scanned:   len(s.universe),
		ScannedAt: time.Now(),
	}, nil
}

// scanSymbol returns the scanned stock when it passes the filter, nil when it
// fails the filter or its data could not be fetched.
func (s *Scanner) scanSymbol(ctx context.Context, ref ReferenceStock) *models.ScannedStock {
	data, err := s.provider.GetScannerData(ctx, ref.Symbol)
	if err != nil {
		observability.Warn("excluding symbol from scan",
			"symbol", ref.Symbol,
			"error", err)
		observability.GetMetrics().RecordScannerSkip(ref.Symbol)
		return nil
	}

	if data.MovingAvg150 == 0 {
		observability.GetMetrics().RecordScannerSkip(ref.Symbol)
		return nil
	}

	deviation := (data.Price - data.MovingAvg150) / data.MovingAvg150 * 100
	deviation = math.Round(deviation*100) / 100

	if math.Abs(deviation) > s.cfg.MaxDeviationPct || data.MarketCap < s.cfg.MarketCapMin {
		return nil
	}

	name := data.Name
	if name == "" {
		name = ref.Name
	}

	return &models.ScannedStock{
		Symbol:       ref.Symbol,
		Name:         name,
		Price:        data.Price,
		MarketCap:    data.MarketCap,
		MovingAvg150: data.MovingAvg150,
		Sector:       data.Sector,
		PriceToMA150: deviation,
	}
}
