package store

import "context"

// Store is an opportunistic local key/value cache with JSON-serialized
// values. The backend stays the source of truth: callers must tolerate
// misses and treat errors as a cache outage, never as data loss.
type Store interface {
	// Get decodes the value under key into out. The boolean reports
	// whether the key existed.
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
}
