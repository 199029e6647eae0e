// Package counterrepo stores the per-region sequence counters behind order identifiers.
package counterrepo

// CounterDTO is one region counter. ID is the region key.
type CounterDTO struct {
	ID            string `gorm:"type:varchar(16);primaryKey"`
	SequenceValue int64  `gorm:"not null;default:0"`
}

// TableName specifies the database table name for counters.
func (CounterDTO) TableName() string {
	return "counters"
}
