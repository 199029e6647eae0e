package commands

import (
	"errors"

	"storefront/internal/core/domain/model/changeset"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var (
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
)

// UpdateOrderCommand is a partial update of an existing order.
//
// Example:
//
//	changes, err := changeset.Parse(map[string]any{"$set": map[string]any{"isDelivered": true}})
//	if err != nil {
//	    return err
//	}
//	cmd, err := NewUpdateOrderCommand(orderID, changes)
type UpdateOrderCommand struct {
	orderID kernel.UUID
	changes changeset.ChangeSet

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates the command. The change-set must propose at least one field.
func NewUpdateOrderCommand(orderID kernel.UUID, changes changeset.ChangeSet) (UpdateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderCommand{}, err
	}
	if changes.Len() == 0 {
		return UpdateOrderCommand{}, changeset.ErrChangeSetIsEmpty
	}

	return UpdateOrderCommand{
		orderID: orderID,
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderCommand) Changes() changeset.ChangeSet {
	return c.changes
}
