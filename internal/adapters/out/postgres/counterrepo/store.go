package counterrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCounterStore implements ports.CounterStore with a single
// INSERT ... ON CONFLICT DO UPDATE ... RETURNING statement. PostgreSQL takes
// the row lock for the duration of that statement, which is the only
// serialization between concurrent allocations of the same region.
type GormCounterStore struct {
	db *gorm.DB
}

// NewGormCounterStore creates the store. db should not be bound to a
// long-running transaction.
func NewGormCounterStore(db *gorm.DB) *GormCounterStore {
	return &GormCounterStore{db: db}
}

// IncrementAndFetch creates the counter at 1 or adds 1 to it and returns the new value.
func (s *GormCounterStore) IncrementAndFetch(ctx context.Context, key string) (int64, error) {
	dto := CounterDTO{ID: key, SequenceValue: 1}

	err := s.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"sequence_value": gorm.Expr("counters.sequence_value + 1"),
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "sequence_value"}}},
		).
		Create(&dto).Error
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %q: %w", key, err)
	}

	return dto.SequenceValue, nil
}
