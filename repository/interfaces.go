package repository

import (
	"context"

	"stockfolio/models"
)

// LedgerStore persists the two ledger collections. Each collection is stored
// as a single opaque blob; there is no transactional guarantee across the two
// beyond the caller issuing both writes before returning control. Writers are
// serialized by the lifecycle manager, last write wins per collection.
type LedgerStore interface {
	LoadOpen(ctx context.Context) ([]models.Position, error)
	LoadClosed(ctx context.Context) ([]models.ClosedPosition, error)
	SaveOpen(ctx context.Context, positions []models.Position) error
	SaveClosed(ctx context.Context, positions []models.ClosedPosition) error
}

// Compile-time interface verification
var _ LedgerStore = (*Repository)(nil)
var _ LedgerStore = (*MemoryStore)(nil)
