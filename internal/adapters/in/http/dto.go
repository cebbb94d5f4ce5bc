package http

import (
	"time"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/account"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
)

type SignupRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string           `json:"token"`
	User  account.Snapshot `json:"user"`
}

type ProductRequest struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Category string `json:"category"`
}

type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Category string `json:"category"`
}

type CreateOrderRequest struct {
	UserID int64  `json:"user_id"`
	Status string `json:"status"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type AddLineItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type Order struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type LineItem struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type OrderWithLineItems struct {
	Order
	Products []LineItem `json:"products"`
}

type Message struct {
	Message string `json:"message"`
}

func orderFromDomain(o *order.Order) Order {
	return Order{
		ID:        o.ID(),
		UserID:    o.UserID(),
		Status:    o.Status().String(),
		CreatedAt: o.CreatedAt(),
	}
}

func orderFromResponse(o queries.OrderResponse) Order {
	return Order{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}
}

func ordersFromResponse(in []queries.OrderResponse) []Order {
	out := make([]Order, len(in))
	for i, o := range in {
		out[i] = orderFromResponse(o)
	}
	return out
}

func lineItemFromDomain(li *order.LineItem) LineItem {
	return LineItem{
		ID:        li.ID(),
		OrderID:   li.OrderID(),
		ProductID: li.ProductID(),
		Quantity:  li.Quantity(),
	}
}

func orderWithLineItemsFromResponse(r queries.OrderWithLineItemsResponse) OrderWithLineItems {
	items := make([]LineItem, len(r.LineItems))
	for i, li := range r.LineItems {
		items[i] = LineItem(li)
	}
	return OrderWithLineItems{Order: orderFromResponse(r.Order), Products: items}
}

func productFromDomain(p *product.Product) Product {
	return Product{
		ID:       p.ID(),
		Name:     p.Name(),
		Price:    p.Price(),
		Category: p.Category(),
	}
}

func productsFromResponse(in []queries.ProductResponse) []Product {
	out := make([]Product, len(in))
	for i, p := range in {
		out[i] = Product(p)
	}
	return out
}
