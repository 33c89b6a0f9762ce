package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stockfolio/config"
	"stockfolio/internal/refresh"
	"stockfolio/models"
	"stockfolio/portfolio"
)

// LifecycleManager defines the position lifecycle operations needed by App
type LifecycleManager interface {
	Open(ctx context.Context, ticker, name string, purchaseDate time.Time, purchasePrice decimal.Decimal, quantity int64) (*models.Position, error)
	Sell(ctx context.Context, id uuid.UUID, sellDate time.Time, sellPrice decimal.Decimal) (*models.ClosedPosition, error)
	DeleteOpen(ctx context.Context, id uuid.UUID) error
	DeleteClosed(ctx context.Context, id uuid.UUID) error
	Annotate(ctx context.Context, id uuid.UUID, note string) (*models.ClosedPosition, error)
	OpenPositions(ctx context.Context) ([]models.Position, error)
	ClosedPositions(ctx context.Context) ([]models.ClosedPosition, error)
}

// Valuer defines the valuation operations needed by App
type Valuer interface {
	Summary(ctx context.Context, open []models.Position, closed []models.ClosedPosition) (models.PortfolioSummary, []portfolio.QuoteResolution)
	SectorDistribution(open []models.Position) []models.SectorWeight
}

// StockScanner defines the scan operation needed by App
type StockScanner interface {
	Scan(ctx context.Context) (*models.ScanResult, error)
}

// HealthChecker reports backing-store health
type HealthChecker interface {
	Health(ctx context.Context) error
	Close()
}

// App struct holds application dependencies using interfaces for testability
type App struct {
	cfg       *config.Config
	manager   LifecycleManager
	valuer    Valuer
	scanner   StockScanner
	db        HealthChecker
	refresher *refresh.Refresher
}

// New creates a new App application struct. The scanner, database health
// checker, and refresher may be nil when not configured.
func New(cfg *config.Config, manager LifecycleManager, valuer Valuer, scanner StockScanner, db HealthChecker, refresher *refresh.Refresher) *App {
	return &App{
		cfg:       cfg,
		manager:   manager,
		valuer:    valuer,
		scanner:   scanner,
		db:        db,
		refresher: refresher,
	}
}

// Shutdown is called when the app is closing
func (a *App) Shutdown(ctx context.Context) {
	if a.refresher != nil {
		a.refresher.Stop()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// DB returns the database health checker, or nil without a database
func (a *App) DB() HealthChecker {
	return a.db
}

// Scanner returns the scanner, or nil when not configured
func (a *App) Scanner() StockScanner {
	return a.scanner
}

// OpenPosition opens a new position
func (a *App) OpenPosition(ctx context.Context, ticker, name string, purchaseDate time.Time, purchasePrice decimal.Decimal, quantity int64) (*models.Position, error) {
	return a.manager.Open(ctx, ticker, name, purchaseDate, purchasePrice, quantity)
}

// SellPosition closes an open position; (nil, nil) when the id is unknown
func (a *App) SellPosition(ctx context.Context, id uuid.UUID, sellDate time.Time, sellPrice decimal.Decimal) (*models.ClosedPosition, error) {
	return a.manager.Sell(ctx, id, sellDate, sellPrice)
}

// DeletePosition removes an open position; deleting a missing id is a no-op
func (a *App) DeletePosition(ctx context.Context, id uuid.UUID) error {
	return a.manager.DeleteOpen(ctx, id)
}

// DeleteClosedPosition removes a closed position; missing ids are a no-op
func (a *App) DeleteClosedPosition(ctx context.Context, id uuid.UUID) error {
	return a.manager.DeleteClosed(ctx, id)
}

// AnnotatePosition sets the reflection note on a closed position
func (a *App) AnnotatePosition(ctx context.Context, id uuid.UUID, note string) (*models.ClosedPosition, error) {
	return a.manager.Annotate(ctx, id, note)
}

// GetOpenPositions returns the open ledger
func (a *App) GetOpenPositions(ctx context.Context) ([]models.Position, error) {
	return a.manager.OpenPositions(ctx)
}

// GetClosedPositions returns the closed ledger
func (a *App) GetClosedPositions(ctx context.Context) ([]models.ClosedPosition, error) {
	return a.manager.ClosedPositions(ctx)
}

// ComputeSummary loads the ledger and computes a fresh summary
func (a *App) ComputeSummary(ctx context.Context) (models.PortfolioSummary, []portfolio.QuoteResolution, error) {
	open, err := a.manager.OpenPositions(ctx)
	if err != nil {
		return models.PortfolioSummary{}, nil, err
	}
	closed, err := a.manager.ClosedPositions(ctx)
	if err != nil {
		return models.PortfolioSummary{}, nil, err
	}
	summary, resolutions := a.valuer.Summary(ctx, open, closed)
	return summary, resolutions, nil
}

// LatestSummary returns the most recent background snapshot when the
// refresher is running, otherwise computes one on demand.
func (a *App) LatestSummary(ctx context.Context) (*refresh.Snapshot, error) {
	if a.refresher != nil {
		if snapshot, ok := a.refresher.Latest(); ok {
			return snapshot, nil
		}
	}
	summary, resolutions, err := a.ComputeSummary(ctx)
	if err != nil {
		return nil, err
	}
	return &refresh.Snapshot{
		Summary:     summary,
		Resolutions: resolutions,
		ComputedAt:  time.Now(),
	}, nil
}

// SectorDistribution returns the sector weights of the open ledger
func (a *App) SectorDistribution(ctx context.Context) ([]models.SectorWeight, error) {
	open, err := a.manager.OpenPositions(ctx)
	if err != nil {
		return nil, err
	}
	return a.valuer.SectorDistribution(open), nil
}

// RunScan runs the market scanner
func (a *App) RunScan(ctx context.Context) (*models.ScanResult, error) {
	if a.scanner == nil {
		return nil, fmt.Errorf("scanner not configured")
	}
	return a.scanner.Scan(ctx)
}
