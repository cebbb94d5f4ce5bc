package queries

import (
	"context"
	"errors"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetOrderLineItemsQueryIsNotConstructed = errors.New(
	"GetOrderLineItemsQuery must be created via NewGetOrderLineItemsQuery constructor",
)

// GetOrderLineItemsQuery loads an order together with its line items.
type GetOrderLineItemsQuery struct {
	orderID int64
	guard   guard.ConstructorGuard
}

func NewGetOrderLineItemsQuery(orderID int64) (GetOrderLineItemsQuery, error) {
	if err := positiveID("order id", orderID); err != nil {
		return GetOrderLineItemsQuery{}, err
	}
	return GetOrderLineItemsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderLineItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderLineItemsQueryIsNotConstructed)
}

func (q GetOrderLineItemsQuery) OrderID() int64 {
	return q.orderID
}

type GetOrderLineItemsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderLineItemsQueryHandler(db *gorm.DB) GetOrderLineItemsQueryHandler {
	return GetOrderLineItemsQueryHandler{db: db}
}

// Handle returns found == false when the order does not exist. Both reads run
// in one read-only snapshot so the lines always belong to the returned order.
func (h GetOrderLineItemsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderLineItemsQuery,
) (result OrderWithLineItemsResponse, found bool, err error) {
	if err = query.Validate(); err != nil {
		return OrderWithLineItemsResponse{}, false, err
	}

	const op = "unable to get order products"

	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET TRANSACTION ISOLATION LEVEL REPEATABLE READ READ ONLY").Error; err != nil {
			return err
		}

		orderRows, err := tx.Raw(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, query.OrderID()).Rows()
		if err != nil {
			return err
		}
		orders, err := scanOrders(orderRows)
		_ = orderRows.Close()
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			return nil
		}
		result.Order = orders[0]
		found = true

		itemRows, err := tx.Raw(`
			SELECT id, order_id, product_id, quantity
			FROM order_line_items
			WHERE order_id = ?
			ORDER BY id
		`, query.OrderID()).Rows()
		if err != nil {
			return err
		}
		defer itemRows.Close()

		result.LineItems = make([]LineItemResponse, 0)
		for itemRows.Next() {
			var li LineItemResponse
			if err = itemRows.Scan(&li.ID, &li.OrderID, &li.ProductID, &li.Quantity); err != nil {
				return err
			}
			result.LineItems = append(result.LineItems, li)
		}
		return itemRows.Err()
	})
	if err != nil {
		return OrderWithLineItemsResponse{}, false, errs.AsPersistence(op, err)
	}

	return result, found, nil
}
