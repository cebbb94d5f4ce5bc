package commands

import (
	"context"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

const addLineItemFailed = "unable to add product to order"

// AddLineItemCommandHandler admits a line item into an open order.
//
// The status check and the insert happen in one transaction that holds the
// order's row lock, so no line item can commit against an order whose
// committed status is closed.
type AddLineItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAddLineItemCommandHandler(uowFactory OrderUoWFactory) AddLineItemCommandHandler {
	return AddLineItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the stored line item.
//
// Returns:
//   - ObjectNotFoundError if the order does not exist
//   - InvalidStateError if the order is closed
//   - ValueIsInvalidError if the product does not exist
//   - PersistenceError for any other store failure
func (h *AddLineItemCommandHandler) Handle(ctx context.Context, cmd AddLineItemCommand) (*order.LineItem, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	item, err := order.NewLineItem(cmd.OrderID(), cmd.ProductID(), cmd.Quantity())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, errs.AsPersistence(addLineItemFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, errs.AsPersistence(addLineItemFailed, err)
	}

	if err = aggregate.AddLineItem(item); err != nil {
		return nil, err
	}

	stored, err := repo.AddLineItem(ctx, item)
	if err != nil {
		return nil, errs.AsPersistence(addLineItemFailed, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.AsPersistence(addLineItemFailed, err)
	}

	return stored, nil
}
