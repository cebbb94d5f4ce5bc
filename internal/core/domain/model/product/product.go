// Package product models the storefront catalog. Products have no lifecycle;
// they are validated on write and otherwise passed through.
package product

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a catalog entry. Price is expressed in minor currency units.
type Product struct {
	id       int64
	name     string
	price    int64
	category string
	guard    guard.ConstructorGuard
}

// NewProduct builds a product that has not been stored yet. Category is optional.
func NewProduct(name string, price int64, category string) (*Product, error) {
	p := &Product{guard: guard.NewConstructorGuard()}
	if err := p.apply(name, price, category); err != nil {
		return nil, err
	}
	return p, nil
}

// RestoreProduct rebuilds a stored product.
func RestoreProduct(id int64, name string, price int64, category string) (*Product, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("product id", fmt.Errorf("%d is not greater than 0", id))
	}
	p, err := NewProduct(name, price, category)
	if err != nil {
		return nil, err
	}
	p.id = id
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() int64        { return p.id }
func (p *Product) Name() string     { return p.name }
func (p *Product) Price() int64     { return p.price }
func (p *Product) Category() string { return p.category }

// Update replaces the product's attributes. On error the product is unchanged.
func (p *Product) Update(name string, price int64, category string) error {
	next := *p
	if err := next.apply(name, price, category); err != nil {
		return err
	}
	*p = next
	return nil
}

func (p *Product) apply(name string, price int64, category string) error {
	var errList []error
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if price <= 0 {
		errList = append(errList,
			errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%d is not greater than 0", price)))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	p.name = strings.TrimSpace(name)
	p.price = price
	p.category = strings.TrimSpace(category)
	return nil
}
