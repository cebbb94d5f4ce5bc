// Package ports defines the contracts between the storefront domain and its
// infrastructure: repositories bound to a unit of work, and the credential
// services used by the authentication flow.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their line items. All methods run on the connection of the unit of work that
// produced the repository.
type OrderRepository interface {
	// Add persists a new order and returns it as stored, with the identifier
	// and creation time assigned by the store.
	Add(ctx context.Context, aggregate *order.Order) (*order.Order, error)

	// Get retrieves an order by identifier.
	// Returns ObjectNotFoundError if no row matches.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the surrounding
	// transaction ends. Concurrent status changes and line item inserts on the
	// same order are serialized through this lock.
	// Returns ObjectNotFoundError if no row matches.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// UpdateStatus persists the order's current status.
	// Returns ObjectNotFoundError if the order no longer exists.
	UpdateStatus(ctx context.Context, aggregate *order.Order) error

	// AddLineItem persists a line item and returns it as stored.
	// An unknown product is reported as an invalid argument.
	AddLineItem(ctx context.Context, item *order.LineItem) (*order.LineItem, error)

	// Delete removes an order together with its line items and returns the
	// deleted order. Returns ObjectNotFoundError if no row matches.
	Delete(ctx context.Context, id int64) (*order.Order, error)
}
