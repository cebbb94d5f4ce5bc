package commands

import (
	"context"

	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"
)

const updateProductFailed = "unable to update product"

type UpdateProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewUpdateProductCommandHandler(uowFactory ProductUoWFactory) UpdateProductCommandHandler {
	return UpdateProductCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the updated product, or ObjectNotFoundError if it is gone.
func (h *UpdateProductCommandHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.AsPersistence(updateProductFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ProductRepository()
	current, err := repo.Get(ctx, cmd.ProductID())
	if err != nil {
		return nil, errs.AsPersistence(updateProductFailed, err)
	}

	if err = current.Update(cmd.Name(), cmd.Price(), cmd.Category()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, current); err != nil {
		return nil, errs.AsPersistence(updateProductFailed, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.AsPersistence(updateProductFailed, err)
	}

	return current, nil
}
