package ports

import "context"

// CounterStore holds one monotonically increasing counter per key.
type CounterStore interface {
	// IncrementAndFetch atomically creates the counter at 1 when absent or adds 1
	// otherwise, and returns the new value. Concurrent callers with the same key
	// never observe the same value. There is no read-then-write window.
	IncrementAndFetch(ctx context.Context, key string) (int64, error)
}
