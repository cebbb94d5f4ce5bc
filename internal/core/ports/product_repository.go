package ports

import (
	"context"

	"storefront/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for catalog products.
type ProductRepository interface {
	Add(ctx context.Context, p *product.Product) (*product.Product, error)

	// Get returns ObjectNotFoundError if no row matches. The row stays locked
	// until the surrounding transaction ends.
	Get(ctx context.Context, id int64) (*product.Product, error)

	// Update returns ObjectNotFoundError if the product no longer exists.
	Update(ctx context.Context, p *product.Product) error

	// Delete removes a product and returns it. A product still referenced by
	// line items is reported as InvalidStateError.
	Delete(ctx context.Context, id int64) (*product.Product, error)
}
