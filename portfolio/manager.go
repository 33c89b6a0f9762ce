package portfolio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stockfolio/models"
	"stockfolio/observability"
	"stockfolio/repository"
	"stockfolio/services"
)

// ValidationError reports a rejected input before any storage mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Manager owns the position lifecycle: opening, selling, deleting, and
// annotating positions. All mutations are serialized by a single mutex so the
// two-collection open-to-closed move is atomic with respect to other manager
// calls.
type Manager struct {
	mu       sync.Mutex
	store    repository.LedgerStore
	category services.CategoryProvider
	search   services.SymbolSearcher
}

// NewManager creates a lifecycle manager over the given ledger store. The
// category provider and symbol searcher are optional; without them new
// positions default to the unknown sector and the ticker as display name.
func NewManager(store repository.LedgerStore, category services.CategoryProvider, search services.SymbolSearcher) *Manager {
	return &Manager{
		store:    store,
		category: category,
		search:   search,
	}
}

// Open validates the inputs, resolves the sector and display name, and
// appends a new position to the open ledger. Sector lookup failures degrade
// to the unknown sector and are never surfaced to the caller.
func (m *Manager) Open(ctx context.Context, ticker, name string, purchaseDate time.Time, purchasePrice decimal.Decimal, quantity int64) (*models.Position, error) {
	if ticker == "" {
		return nil, &ValidationError{Field: "ticker", Reason: "must not be empty"}
	}
	if !purchasePrice.IsPositive() {
		return nil, &ValidationError{Field: "purchase price", Reason: "must be positive"}
	}
	if quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	if name == "" {
		name = m.resolveName(ctx, ticker)
	}
	sector := m.resolveSector(ctx, ticker)

	position := models.Position{
		ID:            uuid.New(),
		Ticker:        ticker,
		Name:          name,
		PurchaseDate:  purchaseDate,
		PurchasePrice: purchasePrice,
		Quantity:      quantity,
		Sector:        sector,
		Active:        true,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	open, err := m.loadOpen(ctx)
	if err != nil {
		return nil, err
	}

	open = append(open, position)
	if err := m.saveOpen(ctx, open); err != nil {
		return nil, err
	}

	observability.Info("position opened",
		"id", position.ID,
		"ticker", position.Ticker,
		"quantity", position.Quantity,
		"sector", position.Sector)

	return &position, nil
}

// Sell moves a position from the open ledger to the closed ledger with its
// realized outcome. A missing id returns (nil, nil) and leaves both
// collections untouched.
func (m *Manager) Sell(ctx context.Context, id uuid.UUID, sellDate time.Time, sellPrice decimal.Decimal) (*models.ClosedPosition, error) {
	if sellPrice.IsNegative() {
		return nil, &ValidationError{Field: "sell price", Reason: "must not be negative"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	open, err := m.loadOpen(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range open {
		if open[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	closedList, err := m.loadClosed(ctx)
	if err != nil {
		return nil, err
	}

	closed := open[idx].Close(sellDate, sellPrice)
	open = append(open[:idx], open[idx+1:]...)
	closedList = append(closedList, closed)

	if err := m.saveOpen(ctx, open); err != nil {
		return nil, err
	}
	if err := m.saveClosed(ctx, closedList); err != nil {
		return nil, err
	}

	observability.Info("position sold",
		"id", closed.ID,
		"ticker", closed.Ticker,
		"profit", closed.TotalProfit,
		"holding_days", closed.HoldingDays)

	return &closed, nil
}

// DeleteOpen removes a position from the open ledger. Deleting a missing id
// is a silent no-op.
func (m *Manager) DeleteOpen(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	open, err := m.loadOpen(ctx)
	if err != nil {
		return err
	}

	kept := open[:0]
	for _, p := range open {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return m.saveOpen(ctx, kept)
}

// DeleteClosed removes a position from the closed ledger. Deleting a missing
// id is a silent no-op.
func (m *Manager) DeleteClosed(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	closed, err := m.loadClosed(ctx)
	if err != nil {
		return err
	}

	kept := closed[:0]
	for _, p := range closed {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return m.saveClosed(ctx, kept)
}

// Annotate overwrites the reflection note on a closed position. A missing id
// returns (nil, nil) without persisting anything. The note may be rewritten
// any number of times.
func (m *Manager) Annotate(ctx context.Context, id uuid.UUID, note string) (*models.ClosedPosition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	closed, err := m.loadClosed(ctx)
	if err != nil {
		return nil, err
	}

	for i := range closed {
		if closed[i].ID == id {
			closed[i].Note = note
			if err := m.saveClosed(ctx, closed); err != nil {
				return nil, err
			}
			return &closed[i], nil
		}
	}
	return nil, nil
}

// OpenPositions returns the current open ledger without mutating it.
func (m *Manager) OpenPositions(ctx context.Context) ([]models.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadOpen(ctx)
}

// ClosedPositions returns the current closed ledger without mutating it.
func (m *Manager) ClosedPositions(ctx context.Context) ([]models.ClosedPosition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadClosed(ctx)
}

func (m *Manager) resolveSector(ctx context.Context, ticker string) models.Sector {
	if m.category == nil {
		return models.SectorUnknown
	}
	sector, err := m.category.GetCategory(ctx, ticker)
	if err != nil {
		observability.Warn("sector lookup failed, defaulting to unknown",
			"ticker", ticker,
			"error", err)
		return models.SectorUnknown
	}
	return sector
}

func (m *Manager) resolveName(ctx context.Context, ticker string) string {
	if m.search == nil {
		return ticker
	}
	name, err := m.search.SearchName(ctx, ticker)
	if err != nil {
		observability.Warn("name lookup failed, using ticker",
			"ticker", ticker,
			"error", err)
		return ticker
	}
	if name == "" {
		return ticker
	}
	return name
}

func (m *Manager) loadOpen(ctx context.Context) ([]models.Position, error) {
	start := time.Now()
	open, err := m.store.LoadOpen(ctx)
	if err != nil {
		observability.GetMetrics().RecordLedgerError("load_open")
		return nil, fmt.Errorf("failed to load open positions: %w", err)
	}
	observability.GetMetrics().RecordLedgerOp("load_open", time.Since(start))
	return open, nil
}

func (m *Manager) loadClosed(ctx context.Context) ([]models.ClosedPosition, error) {
	start := time.Now()
	closed, err := m.store.LoadClosed(ctx)
	if err != nil {
		observability.GetMetrics().RecordLedgerError("load_closed")
		return nil, fmt.Errorf("failed to load closed positions: %w", err)
	}
	observability.GetMetrics().RecordLedgerOp("load_closed", time.Since(start))
	return closed, nil
}

func (m *Manager) saveOpen(ctx context.Context, positions []models.Position) error {
	start := time.Now()
	if err := m.store.SaveOpen(ctx, positions); err != nil {
		observability.GetMetrics().RecordLedgerError("save_open")
		return fmt.Errorf("failed to save open positions: %w", err)
	}
	observability.GetMetrics().RecordLedgerOp("save_open", time.Since(start))
	return nil
}

func (m *Manager) saveClosed(ctx context.Context, positions []models.ClosedPosition) error {
	start := time.Now()
	if err := m.store.SaveClosed(ctx, positions); err != nil {
		observability.GetMetrics().RecordLedgerError("save_closed")
		return fmt.Errorf("failed to save closed positions: %w", err)
	}
	observability.GetMetrics().RecordLedgerOp("save_closed", time.Since(start))
	return nil
}
