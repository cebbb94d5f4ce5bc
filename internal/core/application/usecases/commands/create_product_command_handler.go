package commands

import (
	"context"

	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"
)

const createProductFailed = "unable to create product"

type CreateProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewCreateProductCommandHandler(uowFactory ProductUoWFactory) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the product and returns it with its assigned identifier.
func (h *CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	candidate, err := product.NewProduct(cmd.Name(), cmd.Price(), cmd.Category())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, errs.AsPersistence(createProductFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stored, err := uow.ProductRepository().Add(ctx, candidate)
	if err != nil {
		return nil, errs.AsPersistence(createProductFailed, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.AsPersistence(createProductFailed, err)
	}

	return stored, nil
}
