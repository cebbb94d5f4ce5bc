// Package orderrepo persists order aggregates and their line items with GORM.
// It owns the conversion between domain entities and table rows.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/order"
)

// OrderDTO maps the orders table. CreatedAt is assigned by the database and
// read back through RETURNING.
type OrderDTO struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false;<-:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO maps the order_line_items table.
type LineItemDTO struct {
	ID        int64 `gorm:"primaryKey"`
	OrderID   int64 `gorm:"column:order_id"`
	ProductID int64 `gorm:"column:product_id"`
	Quantity  int   `gorm:"column:quantity"`
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:     o.ID(),
		UserID: o.UserID(),
		Status: o.Status().String(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	return order.RestoreOrder(dto.ID, dto.UserID, order.Status(dto.Status), dto.CreatedAt)
}

func lineItemFromDomain(li *order.LineItem) LineItemDTO {
	return LineItemDTO{
		ID:        li.ID(),
		OrderID:   li.OrderID(),
		ProductID: li.ProductID(),
		Quantity:  li.Quantity(),
	}
}

func lineItemToDomain(dto LineItemDTO) (*order.LineItem, error) {
	return order.RestoreLineItem(dto.ID, dto.OrderID, dto.ProductID, dto.Quantity)
}
