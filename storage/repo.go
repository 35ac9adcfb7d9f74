package storage

import "context"

// Repo is the durable key-value store the session is persisted to. Multi-key writes are atomic:
// either every pair lands or none does.
type Repo interface {
	// MultiGet returns the values present for keys; missing keys are absent from the map
	MultiGet(ctx context.Context, keys ...string) (map[string]string, error)

	// MultiSet writes every pair in one operation
	MultiSet(ctx context.Context, pairs map[string]string) error

	// MultiRemove deletes keys; removing a missing key is not an error
	MultiRemove(ctx context.Context, keys ...string) error

	Close() error
}
