package store

import "context"

// KV is the simple string key-value store the engine persists its state in.
// Get reports ok=false for a missing key; that is not an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
