package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sweettreats/bakery-pos/internal/models"
)

// DefaultBillKey is the single key the bill list is stored under.
const DefaultBillKey = "sweettreats_bills_v1"

// RedisBillStore implements BillStore as one serialized blob under a single
// redis key, preserving the whole-collection read-modify-write contract of
// the other stores.
type RedisBillStore struct {
	client *redis.Client
	key    string
}

// NewRedisBillStore creates a bill store on the given redis client. An
// empty key selects DefaultBillKey.
func NewRedisBillStore(client *redis.Client, key string) *RedisBillStore {
	if key == "" {
		key = DefaultBillKey
	}
	return &RedisBillStore{client: client, key: key}
}

// List returns all saved bills, newest first. A missing key or an
// undeserializable blob yields an empty list.
func (s *RedisBillStore) List(ctx context.Context) ([]models.Bill, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return []models.Bill{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read bill store: %w", err)
	}

	var bills []models.Bill
	if err := json.Unmarshal(data, &bills); err != nil {
		return []models.Bill{}, nil
	}
	if bills == nil {
		return []models.Bill{}, nil
	}
	return bills, nil
}

// Save prepends the bill and rewrites the whole blob
func (s *RedisBillStore) Save(ctx context.Context, bill models.Bill) error {
	bills, err := s.List(ctx)
	if err != nil {
		return err
	}

	return s.write(ctx, append([]models.Bill{bill}, bills...))
}

// Delete rewrites the blob excluding any bill with the given id
func (s *RedisBillStore) Delete(ctx context.Context, id string) error {
	bills, err := s.List(ctx)
	if err != nil {
		return err
	}

	remaining := make([]models.Bill, 0, len(bills))
	for _, bill := range bills {
		if bill.ID != id {
			remaining = append(remaining, bill)
		}
	}
	return s.write(ctx, remaining)
}

func (s *RedisBillStore) write(ctx context.Context, bills []models.Bill) error {
	data, err := json.Marshal(bills)
	if err != nil {
		return fmt.Errorf("failed to serialize bills: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write bill store: %w", err)
	}
	return nil
}
