package queries

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrListProductsQueryIsNotConstructed = errors.New(
		"ListProductsQuery must be created via NewListProductsQuery constructor",
	)
	ErrGetProductQueryIsNotConstructed = errors.New(
		"GetProductQuery must be created via NewGetProductQuery constructor",
	)
)

// ListProductsQuery lists the catalog, optionally narrowed to one category.
type ListProductsQuery struct {
	category string
	guard    guard.ConstructorGuard
}

// NewListProductsQuery builds the query. An empty category lists everything.
func NewListProductsQuery(category string) ListProductsQuery {
	return ListProductsQuery{category: strings.TrimSpace(category), guard: guard.NewConstructorGuard()}
}

func (q ListProductsQuery) Validate() error {
	return q.guard.Validate(ErrListProductsQueryIsNotConstructed)
}

func (q ListProductsQuery) Category() string {
	return q.category
}

type GetProductQuery struct {
	productID int64
	guard     guard.ConstructorGuard
}

func NewGetProductQuery(productID int64) (GetProductQuery, error) {
	if err := positiveID("product id", productID); err != nil {
		return GetProductQuery{}, err
	}
	return GetProductQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProductQuery) Validate() error {
	return q.guard.Validate(ErrGetProductQueryIsNotConstructed)
}

func (q GetProductQuery) ProductID() int64 {
	return q.productID
}

// ProductQueryHandler serves the public catalog reads.
type ProductQueryHandler struct {
	db *gorm.DB
}

func NewProductQueryHandler(db *gorm.DB) ProductQueryHandler {
	return ProductQueryHandler{db: db}
}

func (h ProductQueryHandler) List(ctx context.Context, query ListProductsQuery) ([]ProductResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		products []ProductResponse
		err      error
	)
	if query.Category() == "" {
		products, err = h.fetch(ctx, `SELECT id, name, price, category FROM products ORDER BY id`)
	} else {
		products, err = h.fetch(ctx,
			`SELECT id, name, price, category FROM products WHERE category = ? ORDER BY id`,
			query.Category(),
		)
	}
	if err != nil {
		return nil, errs.AsPersistence("unable to get products", err)
	}
	return products, nil
}

func (h ProductQueryHandler) Get(ctx context.Context, query GetProductQuery) (ProductResponse, error) {
	if err := query.Validate(); err != nil {
		return ProductResponse{}, err
	}

	products, err := h.fetch(ctx,
		`SELECT id, name, price, category FROM products WHERE id = ?`,
		query.ProductID(),
	)
	if err != nil {
		return ProductResponse{}, errs.AsPersistence("unable to get product", err)
	}
	if len(products) == 0 {
		return ProductResponse{}, errs.NewObjectNotFoundError("product", query.ProductID())
	}
	return products[0], nil
}

func (h ProductQueryHandler) fetch(ctx context.Context, sql string, args ...any) ([]ProductResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]ProductResponse, 0)
	for rows.Next() {
		var p ProductResponse
		if err = rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
