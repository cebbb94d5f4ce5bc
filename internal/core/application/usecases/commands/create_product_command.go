package commands

import (
	"errors"

	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand adds an entry to the catalog. Category may be empty.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	name     string
	price    int64
	category string

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(name string, price int64, category string) (CreateProductCommand, error) {
	candidate, err := product.NewProduct(name, price, category)
	if err != nil {
		return CreateProductCommand{}, err
	}

	return CreateProductCommand{
		name:     candidate.Name(),
		price:    candidate.Price(),
		category: candidate.Category(),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) Name() string {
	return c.name
}

func (c CreateProductCommand) Price() int64 {
	return c.price
}

func (c CreateProductCommand) Category() string {
	return c.category
}
