package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrUpdateProductCommandIsNotConstructed = errors.New(
	"UpdateProductCommand must be created via NewUpdateProductCommand constructor",
)

// UpdateProductCommand replaces every attribute of a catalog entry.
type UpdateProductCommand struct { //nolint:recvcheck //using for validation
	productID int64
	name      string
	price     int64
	category  string

	guard guard.ConstructorGuard
}

func NewUpdateProductCommand(productID int64, name string, price int64, category string) (UpdateProductCommand, error) {
	var idErr error
	if productID <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("product id", fmt.Errorf("%d is not greater than 0", productID))
	}

	candidate, err := product.NewProduct(name, price, category)
	if err = errors.Join(idErr, err); err != nil {
		return UpdateProductCommand{}, err
	}

	return UpdateProductCommand{
		productID: productID,
		name:      candidate.Name(),
		price:     candidate.Price(),
		category:  candidate.Category(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateProductCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductCommandIsNotConstructed)
}

func (c UpdateProductCommand) ProductID() int64 {
	return c.productID
}

func (c UpdateProductCommand) Name() string {
	return c.name
}

func (c UpdateProductCommand) Price() int64 {
	return c.price
}

func (c UpdateProductCommand) Category() string {
	return c.category
}
