package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics_RegistersWithoutPanic(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
}

func TestMetrics_RecordLedgerOp(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordLedgerOp("open", 10*time.Millisecond)
	m.RecordLedgerOp("open", 20*time.Millisecond)
	m.RecordLedgerOp("sell", 5*time.Millisecond)

	if got := testutil.ToFloat64(m.LedgerOpsTotal.WithLabelValues("open")); got != 2 {
		t.Errorf("open operations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.LedgerOpsTotal.WithLabelValues("sell")); got != 1 {
		t.Errorf("sell operations = %v, want 1", got)
	}
}

func TestMetrics_PriceCacheCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordPriceCacheHit()
	m.RecordPriceCacheHit()
	m.RecordPriceCacheMiss()

	if got := testutil.ToFloat64(m.PriceCacheHitsTotal); got != 2 {
		t.Errorf("cache hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.PriceCacheMissesTotal); got != 1 {
		t.Errorf("cache misses = %v, want 1", got)
	}
}

func TestMetrics_SummaryFallback(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordSummaryFallback("AAPL")
	m.RecordSummaryFallback("AAPL")

	if got := testutil.ToFloat64(m.SummaryFallbacksTotal.WithLabelValues("AAPL")); got != 2 {
		t.Errorf("fallbacks = %v, want 2", got)
	}
}
