package ports

import "context"

// KeyValueStore is durable storage for serialized values.
//
//go:generate mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mocks
type KeyValueStore interface {
	// Get returns the stored value and true, or nil and false if key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}
