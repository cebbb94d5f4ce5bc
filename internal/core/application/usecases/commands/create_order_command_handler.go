package commands

import (
	"context"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

const createOrderFailed = "unable to create order"

// CreateOrderCommandHandler handles the business logic for order creation.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the order and returns it as stored. The owner's existence is
// enforced by the store's foreign key and reported as an invalid argument.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(cmd.UserID(), cmd.Status())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, errs.AsPersistence(createOrderFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stored, err := uow.OrderRepository().Add(ctx, aggregate)
	if err != nil {
		return nil, errs.AsPersistence(createOrderFailed, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.AsPersistence(createOrderFailed, err)
	}

	return stored, nil
}
