package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to open a new order for a user.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(7, "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID int64
	status order.Status

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the owner and the optional initial status.
// An empty status means open.
func NewCreateOrderCommand(userID int64, status string) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setStatus(status),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) UserID() int64 {
	return c.userID
}

func (c CreateOrderCommand) Status() order.Status {
	return c.status
}

func (c *CreateOrderCommand) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id", fmt.Errorf("%d is not greater than 0", userID))
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setStatus(raw string) error {
	if raw == "" {
		c.status = order.Open
		return nil
	}
	status, err := order.ParseStatus(raw)
	if err != nil {
		return err
	}
	c.status = status
	return nil
}
