package order

import (
	"errors"
	"fmt"
	"math"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created through
// NewLineItem or RestoreLineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// MaxQuantity is the largest quantity a single line item can carry.
const MaxQuantity = math.MaxInt32

// LineItem associates a quantity of a product with an order.
type LineItem struct {
	id        int64
	orderID   int64
	productID int64
	quantity  int
	guard     guard.ConstructorGuard
}

// NewLineItem validates the arguments of a line item that is not yet stored.
// Both the product reference and the quantity must be positive.
func NewLineItem(orderID, productID int64, quantity int) (*LineItem, error) {
	li := &LineItem{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		li.setOrderID(orderID),
		li.setProductID(productID),
		li.setQuantity(quantity),
	); err != nil {
		return nil, err
	}
	return li, nil
}

// RestoreLineItem rebuilds a stored line item.
func RestoreLineItem(id, orderID, productID int64, quantity int) (*LineItem, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("line item id", fmt.Errorf("%d is not greater than 0", id))
	}
	li, err := NewLineItem(orderID, productID, quantity)
	if err != nil {
		return nil, err
	}
	li.id = id
	return li, nil
}

func (li *LineItem) Validate() error {
	if li == nil {
		return ErrLineItemIsNotConstructed
	}
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

func (li *LineItem) ID() int64        { return li.id }
func (li *LineItem) OrderID() int64   { return li.orderID }
func (li *LineItem) ProductID() int64 { return li.productID }
func (li *LineItem) Quantity() int    { return li.quantity }

func (li *LineItem) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not greater than 0", orderID))
	}
	li.orderID = orderID
	return nil
}

func (li *LineItem) setProductID(productID int64) error {
	if productID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("product id", fmt.Errorf("%d is not greater than 0", productID))
	}
	li.productID = productID
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	// quantity is stored in an INTEGER column.
	if quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	li.quantity = quantity
	return nil
}
