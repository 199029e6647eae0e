package commands

import (
	"errors"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// DefaultReconcileBatchSize bounds how many orders one reconciliation run repairs.
const DefaultReconcileBatchSize = 100

var (
	ErrReconcileDeliveredOrdersCommandIsNotConstructed = errors.New(
		"ReconcileDeliveredOrdersCommand must be created via NewReconcileDeliveredOrdersCommand constructor",
	)
)

// ReconcileDeliveredOrdersCommand asks for delivered orders that break the
// delivery-implies-payment rule (rows written before the rule existed) to be
// re-saved through the consistency pipeline.
type ReconcileDeliveredOrdersCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

// NewReconcileDeliveredOrdersCommand creates the command. batchSize must be positive.
func NewReconcileDeliveredOrdersCommand(batchSize int) (ReconcileDeliveredOrdersCommand, error) {
	if batchSize <= 0 {
		return ReconcileDeliveredOrdersCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}
	return ReconcileDeliveredOrdersCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcileDeliveredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileDeliveredOrdersCommandIsNotConstructed)
}

func (c ReconcileDeliveredOrdersCommand) BatchSize() int {
	return c.batchSize
}
