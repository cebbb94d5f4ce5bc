package commands

import (
	"context"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

const updateOrderStatusFailed = "unable to update order status"

// StatusUpdate is the order after an update. Changed is false when the order
// already had the requested status and nothing was written.
type StatusUpdate struct {
	Order   *order.Order
	Changed bool
}

// UpdateOrderStatusCommandHandler moves an order between open and closed.
//
// The order row is locked for the whole transaction, so a concurrent
// AddLineItemCommandHandler either commits before the close or observes it.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the transition and returns the order with whether it changed.
//
// Returns:
//   - ObjectNotFoundError if the order does not exist
//   - InvalidStateError when reopening a closed order
//   - PersistenceError for any other store failure
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (StatusUpdate, error) {
	if err := cmd.Validate(); err != nil {
		return StatusUpdate{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return StatusUpdate{}, errs.AsPersistence(updateOrderStatusFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return StatusUpdate{}, errs.AsPersistence(updateOrderStatusFailed, err)
	}

	changed, err := aggregate.ChangeStatus(cmd.Status())
	if err != nil {
		return StatusUpdate{}, err
	}

	if changed {
		if err = repo.UpdateStatus(ctx, aggregate); err != nil {
			return StatusUpdate{}, errs.AsPersistence(updateOrderStatusFailed, err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return StatusUpdate{}, errs.AsPersistence(updateOrderStatusFailed, err)
	}

	return StatusUpdate{Order: aggregate, Changed: changed}, nil
}
