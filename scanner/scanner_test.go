package scanner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"stockfolio/services"
)

type stubIndicatorProvider struct {
	mu   sync.Mutex
	data map[string]*services.ScannerData
	errs map[string]error
}

func (s *stubIndicatorProvider) GetScannerData(ctx context.Context, symbol string) (*services.ScannerData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.errs[symbol]; ok {
		return nil, err
	}
	if data, ok := s.data[symbol]; ok {
		return data, nil
	}
	return nil, errors.New("unknown symbol")
}

func testUniverse() []ReferenceStock {
	return []ReferenceStock{
		{"AAPL", "Apple Inc.", "Technology"},
		{"MSFT", "Microsoft Corporation", "Technology"},
		{"TINY", "Tiny Co.", "Technology"},
		{"FAR", "Far From Average Inc.", "Energy"},
	}
}

func TestScanner_Scan(t *testing.T) {
	provider := &stubIndicatorProvider{
		data: map[string]*services.ScannerData{
			// 4% above the MA, large cap: match.
			"AAPL": {Price: 187.2, MarketCap: 2_900_000_000_000, MovingAvg150: 180, Sector: "Technology", Name: "Apple Inc"},
			// 3% below the MA, large cap: match.
			"MSFT": {Price: 388, MarketCap: 3_100_000_000_000, MovingAvg150: 400, Sector: "Technology", Name: "Microsoft Corp"},
			// Within the band but under the cap floor.
			"TINY": {Price: 10, MarketCap: 500_000_000, MovingAvg150: 10, Sector: "Technology", Name: "Tiny Co"},
			// Large cap but 20% above the MA.
			"FAR": {Price: 120, MarketCap: 5_000_000_000, MovingAvg150: 100, Sector: "Energy", Name: "Far Inc"},
		},
	}

	scanner := New(provider, testUniverse(), DefaultConfig)
	result, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Scanned != 4 {
		t.Errorf("expected 4 scanned, got %d", result.Scanned)
	}
	if len(result.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(result.Matches))
	}
	if result.Matches[0].Symbol != "AAPL" || result.Matches[1].Symbol != "MSFT" {
		t.Errorf("expected universe order AAPL, MSFT; got %s, %s",
			result.Matches[0].Symbol, result.Matches[1].Symbol)
	}
	if result.ScannedAt.IsZero() {
		t.Error("expected a scan completion timestamp")
	}

	aapl := result.Matches[0]
	if aapl.PriceToMA150 != 4 {
		t.Errorf("expected deviation 4, got %f", aapl.PriceToMA150)
	}
	if aapl.Name != "Apple Inc" {
		t.Errorf("expected provider name, got %s", aapl.Name)
	}
}

func TestScanner_Scan_FailuresExcludeSilently(t *testing.T) {
	provider := &stubIndicatorProvider{
		data: map[string]*services.ScannerData{
			"AAPL": {Price: 100, MarketCap: 2_000_000_000, MovingAvg150: 100, Sector: "Technology", Name: "Apple Inc"},
		},
		errs: map[string]error{
			"MSFT": errors.New("indicator endpoint down"),
			"TINY": errors.New("rate limited"),
			"FAR":  errors.New("rate limited"),
		},
	}

	scanner := New(provider, testUniverse(), DefaultConfig)
	result, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("per-symbol failures must not fail the scan: %v", err)
	}

	if len(result.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(result.Matches))
	}
	if result.Matches[0].Symbol != "AAPL" {
		t.Errorf("unexpected match: %s", result.Matches[0].Symbol)
	}
	if result.Scanned != 4 {
		t.Errorf("scanned count must include excluded symbols, got %d", result.Scanned)
	}
}

func TestScanner_Scan_BoundaryDeviation(t *testing.T) {
	provider := &stubIndicatorProvider{
		data: map[string]*services.ScannerData{
			// Exactly 5% above: kept.
			"AAPL": {Price: 105, MarketCap: 2_000_000_000, MovingAvg150: 100, Sector: "Technology", Name: "A"},
			// 5.5% above: dropped.
			"MSFT": {Price: 105.5, MarketCap: 2_000_000_000, MovingAvg150: 100, Sector: "Technology", Name: "B"},
			// Exactly at the cap floor: kept.
			"TINY": {Price: 100, MarketCap: 1_000_000_000, MovingAvg150: 100, Sector: "Technology", Name: "C"},
			// Exactly -5%: kept.
			"FAR": {Price: 95, MarketCap: 2_000_000_000, MovingAvg150: 100, Sector: "Energy", Name: "D"},
		},
	}

	scanner := New(provider, testUniverse(), DefaultConfig)
	result, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make(map[string]bool)
	for _, m := range result.Matches {
		got[m.Symbol] = true
	}
	if !got["AAPL"] || !got["TINY"] || !got["FAR"] {
		t.Errorf("expected AAPL, TINY, FAR to match, got %v", got)
	}
	if got["MSFT"] {
		t.Error("expected MSFT to be dropped above the deviation bound")
	}
}

func TestScanner_Scan_ConcurrencyBounded(t *testing.T) {
	var inFlight, maxInFlight int64

	provider := &countingProvider{
		fetch: func(symbol string) (*services.ScannerData, error) {
			current := atomic.AddInt64(&inFlight, 1)
			for {
				observed := atomic.LoadInt64(&maxInFlight)
				if current <= observed || atomic.CompareAndSwapInt64(&maxInFlight, observed, current) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&inFlight, -1)
			return &services.ScannerData{Price: 100, MarketCap: 2_000_000_000, MovingAvg150: 100, Sector: "Technology", Name: symbol}, nil
		},
	}

	cfg := DefaultConfig
	cfg.MaxConcurrent = 2

	scanner := New(provider, testUniverse(), cfg)
	if _, err := scanner.Scan(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if atomic.LoadInt64(&maxInFlight) > 2 {
		t.Errorf("expected at most 2 concurrent fetches, observed %d", maxInFlight)
	}
}

type countingProvider struct {
	fetch func(symbol string) (*services.ScannerData, error)
}

func (p *countingProvider) GetScannerData(ctx context.Context, symbol string) (*services.ScannerData, error) {
	return p.fetch(symbol)
}

func TestDefaultUniverse(t *testing.T) {
	if len(DefaultUniverse) < 100 {
		t.Errorf("expected at least 100 reference stocks, got %d", len(DefaultUniverse))
	}

	seen := make(map[string]bool)
	for _, ref := range DefaultUniverse {
		if ref.Symbol == "" || ref.Name == "" {
			t.Errorf("incomplete entry: %+v", ref)
		}
		if seen[ref.Symbol] {
			t.Errorf("duplicate symbol %s", ref.Symbol)
		}
		seen[ref.Symbol] = true
	}
}
