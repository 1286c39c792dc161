package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps JSON blobs in process memory. It goes through the
// same serialization as the redis store so values round-trip identically.
type MemoryStore struct {
	entries sync.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(ctx context.Context, key string, out any) (bool, error) {
	val, ok := s.entries.Load(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(val.([]byte), out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	s.entries.Store(key, data)
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	s.entries.Delete(key)
	return nil
}
