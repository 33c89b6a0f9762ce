package refresh

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"stockfolio/models"
	"stockfolio/observability"
	"stockfolio/portfolio"
)

// DefaultInterval is the cadence of the background summary refresh.
const DefaultInterval = 10 * time.Second

// ComputeFunc produces a fresh portfolio summary.
type ComputeFunc func(ctx context.Context) (models.PortfolioSummary, []portfolio.QuoteResolution, error)

// Snapshot is one published summary along with its version. Versions are
// assigned when a recompute starts, so a slow run that finishes after a newer
// one never overwrites it.
type Snapshot struct {
	Summary     models.PortfolioSummary     `json:"summary"`
	Resolutions []portfolio.QuoteResolution `json:"resolutions"`
	Version     uint64                      `json:"version"`
	ComputedAt  time.Time                   `json:"computed_at"`
}

// Refresher recomputes the portfolio summary on a fixed cadence and holds the
// latest snapshot. The refresh is best effort: overlapping runs are allowed
// and the highest version wins.
type Refresher struct {
	compute     ComputeFunc
	interval    time.Duration
	cron        *cron.Cron
	nextVersion atomic.Uint64

	mu     sync.RWMutex
	latest *Snapshot
}

// New creates a refresher. A non-positive interval uses the default.
func New(compute ComputeFunc, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Refresher{
		compute:  compute,
		interval: interval,
	}
}

// Start schedules the periodic refresh and runs one recompute immediately so
// a snapshot is available before the first tick.
func (r *Refresher) Start(ctx context.Context) error {
	r.cron = cron.New()

	spec := fmt.Sprintf("@every %s", r.interval)
	if _, err := r.cron.AddFunc(spec, func() {
		r.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule summary refresh: %w", err)
	}

	r.cron.Start()
	observability.Info("summary refresher started", "interval", r.interval.String())

	r.RunOnce(ctx)
	return nil
}

// Stop halts the schedule. In-flight recomputes finish and may still publish.
func (r *Refresher) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}

// RunOnce performs a single recompute and publishes it unless a newer run
// already has.
func (r *Refresher) RunOnce(ctx context.Context) {
	version := r.nextVersion.Add(1)

	summary, resolutions, err := r.compute(ctx)
	if err != nil {
		observability.Warn("summary refresh failed",
			"version", version,
			"error", err)
		return
	}

	snapshot := &Snapshot{
		Summary:     summary,
		Resolutions: resolutions,
		Version:     version,
		ComputedAt:  time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.latest != nil && r.latest.Version >= version {
		observability.Debug("discarding stale summary refresh",
			"version", version,
			"current", r.latest.Version)
		return
	}
	r.latest = snapshot
}

// Latest returns the most recent snapshot, or false before the first
// successful refresh.
func (r *Refresher) Latest() (*Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return nil, false
	}
	return r.latest, true
}
