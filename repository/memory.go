package repository

import (
	"context"
	"sync"

	"stockfolio/models"
)

// MemoryStore is an in-memory ledger store. It backs tests and lets the
// application run without a database connection, at the cost of losing the
// ledger on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	open   []models.Position
	closed []models.ClosedPosition
}

// NewMemoryStore creates an empty in-memory ledger store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadOpen(ctx context.Context) ([]models.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Position, len(s.open))
	copy(out, s.open)
	return out, nil
}

func (s *MemoryStore) LoadClosed(ctx context.Context) ([]models.ClosedPosition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ClosedPosition, len(s.closed))
	copy(out, s.closed)
	return out, nil
}

func (s *MemoryStore) SaveOpen(ctx context.Context, positions []models.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = make([]models.Position, len(positions))
	copy(s.open, positions)
	return nil
}

func (s *MemoryStore) SaveClosed(ctx context.Context, positions []models.ClosedPosition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = make([]models.ClosedPosition, len(positions))
	copy(s.closed, positions)
	return nil
}
