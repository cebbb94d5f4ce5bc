// Package queries contains read operations over the storefront store.
// Queries bypass the domain model and the unit of work: they read rows with
// raw SQL on pooled connections and return flat response structs.
package queries

import (
	"database/sql"
	"time"

	"storefront/internal/core/domain/model/account"
)

// OrderResponse is the read model of an order.
type OrderResponse struct {
	ID        int64
	UserID    int64
	Status    string
	CreatedAt time.Time
}

// LineItemResponse is the read model of one order line.
type LineItemResponse struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
}

// OrderWithLineItemsResponse is an order together with all of its lines.
type OrderWithLineItemsResponse struct {
	Order     OrderResponse
	LineItems []LineItemResponse
}

// ProductResponse is the read model of a catalog entry.
type ProductResponse struct {
	ID       int64
	Name     string
	Price    int64
	Category string
}

// AccountResponse never carries the credential digest.
type AccountResponse = account.Snapshot

const orderColumns = `id, user_id, status, created_at`

func scanOrders(rows *sql.Rows) ([]OrderResponse, error) {
	orders := make([]OrderResponse, 0)
	for rows.Next() {
		var o OrderResponse
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
