package commands

import (
	"context"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

const deleteOrderFailed = "unable to delete order"

type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deletes the order and returns it as it was before deletion.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.AsPersistence(deleteOrderFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.OrderRepository().Delete(ctx, cmd.OrderID())
	if err != nil {
		return nil, errs.AsPersistence(deleteOrderFailed, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.AsPersistence(deleteOrderFailed, err)
	}

	return deleted, nil
}
