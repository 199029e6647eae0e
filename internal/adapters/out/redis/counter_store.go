// Package redis provides a CounterStore backed by Redis INCR. It is an
// alternative to the PostgreSQL counters table for deployments that already
// run Redis; both give the same atomic increment-and-fetch semantics.
package redis

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces the per-region counters.
const KeyPrefix = "orders:counter:"

var _ ports.CounterStore = (*CounterStore)(nil)

// CounterStore keeps one counter per region under KeyPrefix+region.
type CounterStore struct {
	client goredis.Cmdable
}

// NewCounterStore creates a counter store over an existing client.
func NewCounterStore(client goredis.Cmdable) (*CounterStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &CounterStore{client: client}, nil
}

// IncrementAndFetch runs INCR, which creates a missing key at 0 before
// incrementing it.
func (s *CounterStore) IncrementAndFetch(ctx context.Context, key string) (int64, error) {
	if key == "" {
		return 0, errs.NewValueIsRequiredError("key")
	}

	value, err := s.client.Incr(ctx, KeyPrefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %s: %w", key, err)
	}
	return value, nil
}
