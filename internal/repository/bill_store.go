package repository

import (
	"context"
	"sync"

	"github.com/sweettreats/bakery-pos/internal/models"
)

// BillStore defines the interface for bill persistence. The contract is
// deliberately whole-collection: every mutation rewrites the full list
// (data volumes are small and this keeps the storage layer trivial), and
// an implementation that cannot read its blob reports an empty list rather
// than an error.
type BillStore interface {
	// List returns all saved bills, newest first. A store that has never
	// been written returns an empty list.
	List(ctx context.Context) ([]models.Bill, error)
	// Save prepends the bill to the list and rewrites the whole blob.
	Save(ctx context.Context, bill models.Bill) error
	// Delete rewrites the list excluding any bill with the given id.
	// Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error
}

// MemoryBillStore implements BillStore in process memory. Used for tests
// and ephemeral runs.
type MemoryBillStore struct {
	mu    sync.RWMutex
	bills []models.Bill
}

// NewMemoryBillStore creates an empty in-memory bill store
func NewMemoryBillStore() *MemoryBillStore {
	return &MemoryBillStore{}
}

// List returns all saved bills, newest first
func (s *MemoryBillStore) List(ctx context.Context) ([]models.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bills := make([]models.Bill, len(s.bills))
	copy(bills, s.bills)
	return bills, nil
}

// Save prepends the bill to the stored list
func (s *MemoryBillStore) Save(ctx context.Context, bill models.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bills = append([]models.Bill{bill}, s.bills...)
	return nil
}

// Delete removes any bill with the given id
func (s *MemoryBillStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := make([]models.Bill, 0, len(s.bills))
	for _, bill := range s.bills {
		if bill.ID != id {
			remaining = append(remaining, bill)
		}
	}
	s.bills = remaining
	return nil
}
