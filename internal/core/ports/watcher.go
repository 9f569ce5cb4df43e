package ports

import "context"

// Watcher reports changes to persisted values made outside this process.
type Watcher interface {
	// Watch calls onChange, debounced, whenever the value stored under key changes.
	// Watching stops when ctx is done or Close is called.
	Watch(ctx context.Context, key string, onChange func()) error

	// Close releases all resources.
	Close() error
}
