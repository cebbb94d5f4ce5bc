package order

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a customer order. It is the aggregate root for the line
// items attached to it.
//
// Order follows these invariants:
//   - Owner (user ID) is positive and never changes
//   - Status is always Open or Closed
//   - Status only moves Open -> Closed
//   - Line items are only admitted while Open
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is assigned by the store; 0 until persisted
	id int64

	// userID is the owning user
	userID int64

	// status is the current lifecycle state
	status Status

	// createdAt is assigned by the store and orders "most recent" lookups
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order for userID that has not been stored yet.
//
// Parameters:
//   - userID: owning user, must be positive
//   - status: initial status; the empty string means Open
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: ValueIsInvalidError if the owner or status is invalid
//
// Example:
//
//	o, err := order.NewOrder(7, "")
//	if err != nil {
//	    // Handle validation error
//	}
//	// o.Status() == order.Open
func NewOrder(userID int64, status Status) (*Order, error) {
	if status == "" {
		status = Open
	}

	o := &Order{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		o.setUserID(userID),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}
	return o, nil
}

// RestoreOrder rebuilds an order loaded from the store.
func RestoreOrder(id, userID int64, status Status, createdAt time.Time) (*Order, error) {
	o := &Order{guard: guard.NewConstructorGuard(), createdAt: createdAt}
	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two stored orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id != 0 && o.id == other.id
}

func (o *Order) ID() int64 {
	return o.id
}

func (o *Order) UserID() int64 {
	return o.userID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ChangeStatus moves the order to target.
//
// Returns:
//   - (true, nil) when the status actually changed
//   - (false, nil) when the order already had the target status
//   - ValueIsInvalidError for a status outside the two-element set
//   - InvalidStateError when trying to reopen a closed order
func (o *Order) ChangeStatus(target Status) (bool, error) {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return false, err
	}
	if next == o.status {
		return false, nil
	}
	o.status = next
	return true, nil
}

// AddLineItem admits item into the order.
//
// This method enforces the following business rules:
//   - The item must have been built by NewLineItem
//   - The item must reference this order
//   - The order must be Open
//
// The caller is responsible for holding the order's row lock while it checks
// and persists the item, so the status read here is the committed one.
func (o *Order) AddLineItem(item *LineItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.OrderID() != o.id {
		return errs.NewValueIsInvalidErrorWithCause(
			"order id",
			fmt.Errorf("line item references order %d, not %d", item.OrderID(), o.id),
		)
	}
	return o.status.ValidateAcceptLineItems()
}

func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not greater than 0", id))
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id", fmt.Errorf("%d is not greater than 0", userID))
	}
	o.userID = userID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
