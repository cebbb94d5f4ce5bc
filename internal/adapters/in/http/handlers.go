package http

import (
	"context"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/account"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
)

// Handler is a use case that always produces a result or an error.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Lookup is a use case whose result may be absent without that being an error.
type Lookup[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, bool, error)
}

type AccountReader interface {
	List(ctx context.Context, query queries.ListAccountsQuery) ([]queries.AccountResponse, error)
	Get(ctx context.Context, query queries.GetAccountQuery) (queries.AccountResponse, error)
}

type ProductReader interface {
	List(ctx context.Context, query queries.ListProductsQuery) ([]queries.ProductResponse, error)
	Get(ctx context.Context, query queries.GetProductQuery) (queries.ProductResponse, error)
}

// Handlers lists every use case reachable over HTTP.
type Handlers struct {
	CreateAccount Handler[commands.CreateAccountCommand, commands.SignedInAccount]
	Authenticate  Lookup[commands.AuthenticateCommand, account.Snapshot]
	Accounts      AccountReader

	CreateProduct Handler[commands.CreateProductCommand, *product.Product]
	UpdateProduct Handler[commands.UpdateProductCommand, *product.Product]
	DeleteProduct Handler[commands.DeleteProductCommand, *product.Product]
	Products      ProductReader

	CreateOrder       Handler[commands.CreateOrderCommand, *order.Order]
	UpdateOrderStatus Handler[commands.UpdateOrderStatusCommand, commands.StatusUpdate]
	DeleteOrder       Handler[commands.DeleteOrderCommand, *order.Order]
	AddLineItem       Handler[commands.AddLineItemCommand, *order.LineItem]
	GetOrder          Handler[queries.GetOrderQuery, queries.OrderResponse]
	ListOrders        Handler[queries.ListOrdersQuery, []queries.OrderResponse]
	ClosedOrders      Handler[queries.GetClosedOrdersQuery, []queries.OrderResponse]
	CurrentOrder      Lookup[queries.GetCurrentOrderQuery, queries.OrderResponse]
	OrderLineItems    Lookup[queries.GetOrderLineItemsQuery, queries.OrderWithLineItemsResponse]
}
