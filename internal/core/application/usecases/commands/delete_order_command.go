package commands

import (
	"errors"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand removes an order and its line items. Deletion is allowed
// in any status.
type DeleteOrderCommand struct {
	orderID int64

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(orderID int64) (DeleteOrderCommand, error) {
	if orderID <= 0 {
		return DeleteOrderCommand{}, errs.NewValueIsRequiredError("order id")
	}
	return DeleteOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() int64 {
	return c.orderID
}
