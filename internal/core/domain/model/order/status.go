package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Open ──> Closed
//
// Open is the initial state. Line items can only be attached to an open order.
// The string value is what gets persisted and what clients send.
type Status string

const (
	// Open is the initial status. The order accepts line items.
	Open Status = "open"

	// Closed is the final status. The order no longer accepts line items and
	// can only be deleted.
	Closed Status = "closed"
)

// ClosedOrderReason is the reason reported when a line item targets a closed order.
const ClosedOrderReason = "cannot add products to a closed order"

// ParseStatus converts external input into a Status.
//
// Returns:
//   - the matching Status for "open" or "closed"
//   - ValueIsInvalidError for anything else, including the empty string
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks that the status is one of Open or Closed.
func (s Status) Validate() error {
	switch s {
	case Open, Closed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%q is not a valid status, expected %q or %q", string(s), Open, Closed),
		)
	}
}

func (s Status) String() string {
	return string(s)
}

// TransitionTo returns the status that results from moving s to target.
//
// Valid transitions:
//   - Open -> Closed
//   - Open -> Open, Closed -> Closed (no-op)
//
// Invalid transitions:
//   - Closed -> Open (InvalidStateError)
//   - anything involving a status outside the two-element set (ValueIsInvalidError)
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}
	if err := s.Validate(); err != nil {
		return "", err
	}
	if s == Closed && target == Open {
		return "", errs.NewInvalidStateError("a closed order cannot be reopened")
	}
	return target, nil
}

// ValidateAcceptLineItems reports whether an order in this status may take new
// line items.
func (s Status) ValidateAcceptLineItems() error {
	if s != Open {
		return errs.NewInvalidStateError(ClosedOrderReason)
	}
	return nil
}
