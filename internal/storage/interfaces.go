package storage

import "context"

// LocalStore is the durable key-value surface behind the marketplace
// state. This abstraction allows swapping between the memory store
// (tests, ephemeral sessions) and the SQLite store (durable sessions)
// without changing the state store.
type LocalStore interface {
	// Get retrieves a value by key. Returns ErrNoKey if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a value by key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}

// StoreError is a sentinel error type for storage failures.
type StoreError string

func (e StoreError) Error() string { return string(e) }

const (
	// ErrNoKey indicates the key was not found in the store.
	ErrNoKey StoreError = "key not found"
)
