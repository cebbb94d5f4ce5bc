package commands

import (
	"context"

	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"
)

const deleteProductFailed = "unable to delete product"

type DeleteProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewDeleteProductCommandHandler(uowFactory ProductUoWFactory) DeleteProductCommandHandler {
	return DeleteProductCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deletes the product and returns it. A product that still appears on
// some order is kept and reported as InvalidStateError.
func (h *DeleteProductCommandHandler) Handle(ctx context.Context, cmd DeleteProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.AsPersistence(deleteProductFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.ProductRepository().Delete(ctx, cmd.ProductID())
	if err != nil {
		return nil, errs.AsPersistence(deleteProductFailed, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.AsPersistence(deleteProductFailed, err)
	}

	return deleted, nil
}
