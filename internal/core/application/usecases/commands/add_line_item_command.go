package commands

import (
	"errors"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrAddLineItemCommandIsNotConstructed = errors.New(
	"AddLineItemCommand must be created via NewAddLineItemCommand constructor",
)

// AddLineItemCommand attaches a quantity of a product to an order.
//
// Example:
//
//	cmd, err := NewAddLineItemCommand(orderID, 3, 2)
//	if err != nil {
//	    return err // quantity or product id invalid
//	}
//	item, err := handler.Handle(ctx, cmd)
type AddLineItemCommand struct { //nolint:recvcheck //using for validation
	item *order.LineItem

	guard guard.ConstructorGuard
}

func NewAddLineItemCommand(orderID, productID int64, quantity int) (AddLineItemCommand, error) {
	item, err := order.NewLineItem(orderID, productID, quantity)
	if err != nil {
		return AddLineItemCommand{}, err
	}

	return AddLineItemCommand{
		item:  item,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c AddLineItemCommand) Validate() error {
	return c.guard.Validate(ErrAddLineItemCommandIsNotConstructed)
}

func (c AddLineItemCommand) OrderID() int64 {
	return c.item.OrderID()
}

func (c AddLineItemCommand) ProductID() int64 {
	return c.item.ProductID()
}

func (c AddLineItemCommand) Quantity() int {
	return c.item.Quantity()
}
