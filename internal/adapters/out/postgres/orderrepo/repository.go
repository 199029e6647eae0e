package orderrepo

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/changeset"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/orderid"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// columns that a full-document save never rewrites
var immutableColumns = []string{"id", "custom_order_id", "created_at"}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := aggregate.ValidateIdentifier(); err != nil {
		return err
	}
	if aggregate.Identifier().IsZero() {
		return order.ErrIdentifierIsRequired
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("customOrderId", dto.CustomOrderID, err)
		}
		return err
	}

	aggregate.MarkPersisted(dto.CreatedAt, dto.UpdatedAt)
	return nil
}

// Update saves the complete state of an existing order. Zero values are
// written too, so clearing a field is persisted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := aggregate.ValidateIdentifier(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit(immutableColumns...).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	aggregate.MarkPersisted(dto.CreatedAt, dto.UpdatedAt)
	return nil
}

// ApplyChanges performs a partial update with the fields of changes.
func (r *GormOrderRepository) ApplyChanges(ctx context.Context, id kernel.UUID, changes changeset.ChangeSet) error {
	if err := id.Validate(); err != nil {
		return err
	}

	updates, err := toColumns(changes)
	if err != nil {
		return err
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByIdentifier retrieves an order by its customOrderId.
func (r *GormOrderRepository) GetByIdentifier(ctx context.Context, identifier orderid.Identifier) (*order.Order, error) {
	if identifier.IsZero() {
		return nil, errs.NewValueIsRequiredError("customOrderId")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "custom_order_id = ?", identifier.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", identifier.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllViolatingDeliveryInvariant retrieves delivered orders that are not fully
// paid, lack a timestamp or are not in Delivered status, oldest first. Rows
// without a custom order identifier cannot be saved back and are left out.
func (r *GormOrderRepository) GetAllViolatingDeliveryInvariant(ctx context.Context, limit int) ([]*order.Order, error) {
	if limit <= 0 {
		return []*order.Order{}, nil
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("is_delivered").
		Where("custom_order_id <> ''").
		Where("(NOT is_paid OR paid_at IS NULL OR delivered_at IS NULL OR order_status <> ?)",
			order.Delivered.String()).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
