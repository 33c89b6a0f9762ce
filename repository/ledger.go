package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"stockfolio/models"

	"github.com/jackc/pgx/v5"
)

// Storage identifiers for the two ledger collections. The closed collection
// reuses the open key with a "-sold" suffix.
const (
	OpenKey   = "stock-portfolio-data"
	ClosedKey = OpenKey + "-sold"
)

// LoadOpen returns all open positions.
func (r *Repository) LoadOpen(ctx context.Context) ([]models.Position, error) {
	var positions []models.Position
	if err := r.loadBlob(ctx, OpenKey, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// LoadClosed returns all closed positions.
func (r *Repository) LoadClosed(ctx context.Context) ([]models.ClosedPosition, error) {
	var positions []models.ClosedPosition
	if err := r.loadBlob(ctx, ClosedKey, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// SaveOpen overwrites the open collection.
func (r *Repository) SaveOpen(ctx context.Context, positions []models.Position) error {
	return r.saveBlob(ctx, OpenKey, positions)
}

// SaveClosed overwrites the closed collection.
func (r *Repository) SaveClosed(ctx context.Context, positions []models.ClosedPosition) error {
	return r.saveBlob(ctx, ClosedKey, positions)
}

// loadBlob reads one collection blob into dest. A missing row means the
// collection has never been written and is treated as empty.
func (r *Repository) loadBlob(ctx context.Context, key string, dest any) error {
	var data []byte
	err := r.db.QueryRow(ctx, `
		SELECT data FROM ledger_blobs WHERE key = $1
	`, key).Scan(&data)

	if err == pgx.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load ledger blob %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal ledger blob %s: %w", key, err)
	}
	return nil
}

func (r *Repository) saveBlob(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger blob %s: %w", key, err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO ledger_blobs (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`, key, data)

	if err != nil {
		return fmt.Errorf("failed to save ledger blob %s: %w", key, err)
	}
	return nil
}
