package localstore

import (
	"context"
)

// Storage is a byte-level key/value store scoped to one device profile.
type Storage interface {
	// Get returns the value under key, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set inserts or replaces the value under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns every key with its value.
	List(ctx context.Context) (map[string][]byte, error)
	// Clear removes all keys.
	Clear(ctx context.Context) error
}
