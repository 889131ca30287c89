package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sweettreats/bakery-pos/internal/models"
)

// FileBillStore implements BillStore as a single JSON file holding the
// serialized bill list, newest first. The whole file round-trips through
// serialization on every mutation.
type FileBillStore struct {
	path string
	mu   sync.Mutex
}

// NewFileBillStore creates a bill store backed by the JSON file at path.
// The file is created lazily on first save.
func NewFileBillStore(path string) *FileBillStore {
	return &FileBillStore{path: path}
}

// List returns all saved bills, newest first. A missing or unreadable
// file yields an empty list: corruption is absorbed here, never surfaced
// to callers.
func (s *FileBillStore) List(ctx context.Context) ([]models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// Save prepends the bill and rewrites the whole file
func (s *FileBillStore) Save(ctx context.Context, bill models.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bills := append([]models.Bill{bill}, s.load()...)
	return s.write(bills)
}

// Delete rewrites the file excluding any bill with the given id
func (s *FileBillStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bills := s.load()
	remaining := make([]models.Bill, 0, len(bills))
	for _, bill := range bills {
		if bill.ID != id {
			remaining = append(remaining, bill)
		}
	}
	return s.write(remaining)
}

func (s *FileBillStore) load() []models.Bill {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []models.Bill{}
	}

	var bills []models.Bill
	if err := json.Unmarshal(data, &bills); err != nil {
		return []models.Bill{}
	}
	if bills == nil {
		return []models.Bill{}
	}
	return bills
}

func (s *FileBillStore) write(bills []models.Bill) error {
	data, err := json.Marshal(bills)
	if err != nil {
		return fmt.Errorf("failed to serialize bills: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write bill store: %w", err)
	}
	return nil
}
