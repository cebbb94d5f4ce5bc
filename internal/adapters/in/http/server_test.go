package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/account"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func TestCreateOrder(t *testing.T) {
	api := newTestAPI(t, Handlers{
		CreateOrder: handlerFunc[commands.CreateOrderCommand, *order.Order](
			func(_ context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
				assert.Equal(t, int64(1), cmd.UserID())
				assert.Equal(t, order.Open, cmd.Status())
				return order.RestoreOrder(10, cmd.UserID(), cmd.Status(), createdAt)
			}),
	})

	rec := api.do(http.MethodPost, "/orders", `{"user_id": 1}`, api.aliceAuth)

	require.Equal(t, http.StatusCreated, rec.Code)
	got := decode[Order](t, rec.Body.Bytes())
	assert.Equal(t, Order{ID: 10, UserID: 1, Status: "open", CreatedAt: createdAt}, got)
	assert.Contains(t, api.recorder.Events(), "order_created")
}

func TestCreateOrder_InvalidStatusNeverReachesHandler(t *testing.T) {
	api := newTestAPI(t, Handlers{
		CreateOrder: handlerFunc[commands.CreateOrderCommand, *order.Order](
			func(context.Context, commands.CreateOrderCommand) (*order.Order, error) {
				t.Fatal("handler must not run")
				return nil, nil
			}),
	})

	rec := api.do(http.MethodPost, "/orders", `{"user_id": 1, "status": "shipped"}`, api.aliceAuth)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[Error](t, rec.Body.Bytes())
	assert.Equal(t, "InvalidArgument", body.Kind)
	assert.Equal(t, http.StatusBadRequest, body.Code)
}

func TestCreateOrder_RequiresToken(t *testing.T) {
	api := newTestAPI(t, Handlers{})
	rec := api.do(http.MethodPost, "/orders", `{"user_id": 1}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func statusUpdateHandler(changed bool) handlerFunc[commands.UpdateOrderStatusCommand, commands.StatusUpdate] {
	return func(_ context.Context, cmd commands.UpdateOrderStatusCommand) (commands.StatusUpdate, error) {
		o, err := order.RestoreOrder(cmd.OrderID(), 1, cmd.Status(), createdAt)
		return commands.StatusUpdate{Order: o, Changed: changed}, err
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	api := newTestAPI(t, Handlers{UpdateOrderStatus: statusUpdateHandler(true)})

	rec := api.do(http.MethodPut, "/orders/10/status", `{"status": "closed"}`, api.aliceAuth)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "closed", decode[Order](t, rec.Body.Bytes()).Status)
	assert.Contains(t, api.recorder.Events(), "status:closed")
}

func TestUpdateOrderStatus_SameStatusIsNotCounted(t *testing.T) {
	api := newTestAPI(t, Handlers{UpdateOrderStatus: statusUpdateHandler(false)})

	rec := api.do(http.MethodPut, "/orders/10/status", `{"status": "closed"}`, api.aliceAuth)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "closed", decode[Order](t, rec.Body.Bytes()).Status)
	assert.NotContains(t, api.recorder.Events(), "status:closed")
}

func TestUpdateOrderStatus_NonNumericID(t *testing.T) {
	api := newTestAPI(t, Handlers{})
	rec := api.do(http.MethodPut, "/orders/abc/status", `{"status": "closed"}`, api.aliceAuth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddProductToOrder(t *testing.T) {
	api := newTestAPI(t, Handlers{
		AddLineItem: handlerFunc[commands.AddLineItemCommand, *order.LineItem](
			func(_ context.Context, cmd commands.AddLineItemCommand) (*order.LineItem, error) {
				return order.RestoreLineItem(5, cmd.OrderID(), cmd.ProductID(), cmd.Quantity())
			}),
	})

	rec := api.do(http.MethodPost, "/orders/10/products", `{"product_id": 3, "quantity": 2}`, api.aliceAuth)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, LineItem{ID: 5, OrderID: 10, ProductID: 3, Quantity: 2}, decode[LineItem](t, rec.Body.Bytes()))
	assert.Contains(t, api.recorder.Events(), "line_item_added")
}

func TestAddProductToOrder_ClosedOrder(t *testing.T) {
	api := newTestAPI(t, Handlers{
		AddLineItem: handlerFunc[commands.AddLineItemCommand, *order.LineItem](
			func(context.Context, commands.AddLineItemCommand) (*order.LineItem, error) {
				return nil, errs.NewInvalidStateError(order.ClosedOrderReason)
			}),
	})

	rec := api.do(http.MethodPost, "/orders/10/products", `{"product_id": 3, "quantity": 2}`, api.aliceAuth)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[Error](t, rec.Body.Bytes())
	assert.Equal(t, "InvalidState", body.Kind)
	assert.Contains(t, body.Message, "cannot add products to a closed order")
	assert.Contains(t, api.recorder.Events(), "line_item_rejected:closed")
}

func TestAddProductToOrder_ZeroQuantity(t *testing.T) {
	api := newTestAPI(t, Handlers{})
	rec := api.do(http.MethodPost, "/orders/10/products", `{"product_id": 3, "quantity": 0}`, api.aliceAuth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddProductToOrder_QuantityBeyondRange(t *testing.T) {
	api := newTestAPI(t, Handlers{
		AddLineItem: handlerFunc[commands.AddLineItemCommand, *order.LineItem](
			func(context.Context, commands.AddLineItemCommand) (*order.LineItem, error) {
				t.Fatal("handler must not run")
				return nil, nil
			}),
	})

	rec := api.do(http.MethodPost, "/orders/10/products", `{"product_id": 3, "quantity": 1099511627776}`, api.aliceAuth)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[Error](t, rec.Body.Bytes())
	assert.Equal(t, "InvalidArgument", body.Kind)
	assert.Contains(t, body.Message, "quantity")
}

func TestGetCurrentOrder(t *testing.T) {
	api := newTestAPI(t, Handlers{
		CurrentOrder: lookupFunc[queries.GetCurrentOrderQuery, queries.OrderResponse](
			func(_ context.Context, q queries.GetCurrentOrderQuery) (queries.OrderResponse, bool, error) {
				if q.UserID() == 2 {
					return queries.OrderResponse{}, false, nil
				}
				return queries.OrderResponse{ID: 7, UserID: q.UserID(), Status: "open", CreatedAt: createdAt}, true, nil
			}),
	})

	rec := api.get("/orders/user/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), decode[Order](t, rec.Body.Bytes()).ID)

	rec = api.get("/orders/user/2")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no open order for user", decode[Message](t, rec.Body.Bytes()).Message)
}

func TestGetClosedOrders(t *testing.T) {
	api := newTestAPI(t, Handlers{
		ClosedOrders: handlerFunc[queries.GetClosedOrdersQuery, []queries.OrderResponse](
			func(context.Context, queries.GetClosedOrdersQuery) ([]queries.OrderResponse, error) {
				return []queries.OrderResponse{}, nil
			}),
	})

	for _, path := range []string{"/orders/user/1/closed", "/orders/user/1/completed"} {
		rec := api.get(path)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `[]`, rec.Body.String(), path)
	}
}

func TestGetOrderProducts(t *testing.T) {
	api := newTestAPI(t, Handlers{
		OrderLineItems: lookupFunc[queries.GetOrderLineItemsQuery, queries.OrderWithLineItemsResponse](
			func(_ context.Context, q queries.GetOrderLineItemsQuery) (queries.OrderWithLineItemsResponse, bool, error) {
				if q.OrderID() != 10 {
					return queries.OrderWithLineItemsResponse{}, false, nil
				}
				return queries.OrderWithLineItemsResponse{
					Order:     queries.OrderResponse{ID: 10, UserID: 1, Status: "open", CreatedAt: createdAt},
					LineItems: []queries.LineItemResponse{{ID: 1, OrderID: 10, ProductID: 3, Quantity: 2}},
				}, true, nil
			}),
	})

	rec := api.get("/orders/10/products")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[OrderWithLineItems](t, rec.Body.Bytes())
	assert.Equal(t, int64(10), got.ID)
	require.Len(t, got.Products, 1)
	assert.Equal(t, int64(3), got.Products[0].ProductID)

	assert.Equal(t, http.StatusNotFound, api.get("/orders/11/products").Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	api := newTestAPI(t, Handlers{
		GetOrder: handlerFunc[queries.GetOrderQuery, queries.OrderResponse](
			func(_ context.Context, q queries.GetOrderQuery) (queries.OrderResponse, error) {
				return queries.OrderResponse{}, errs.NewObjectNotFoundError("order", q.OrderID())
			}),
	})

	rec := api.get("/orders/99")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NotFound", decode[Error](t, rec.Body.Bytes()).Kind)
}

func TestDeleteOrder(t *testing.T) {
	api := newTestAPI(t, Handlers{
		DeleteOrder: handlerFunc[commands.DeleteOrderCommand, *order.Order](
			func(_ context.Context, cmd commands.DeleteOrderCommand) (*order.Order, error) {
				return order.RestoreOrder(cmd.OrderID(), 1, order.Closed, createdAt)
			}),
	})

	rec := api.do(http.MethodDelete, "/orders/10", "", api.aliceAuth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, api.recorder.Events(), "order_deleted")
}

func TestPersistenceFailureHidesCause(t *testing.T) {
	api := newTestAPI(t, Handlers{
		ListOrders: handlerFunc[queries.ListOrdersQuery, []queries.OrderResponse](
			func(context.Context, queries.ListOrdersQuery) ([]queries.OrderResponse, error) {
				return nil, errs.NewPersistenceError("unable to get orders", assert.AnError)
			}),
	})

	rec := api.get("/orders")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[Error](t, rec.Body.Bytes())
	assert.Equal(t, Error{Code: 500, Kind: "PersistenceError", Message: "unable to get orders"}, body)
}

func TestSignup(t *testing.T) {
	api := newTestAPI(t, Handlers{
		CreateAccount: handlerFunc[commands.CreateAccountCommand, commands.SignedInAccount](
			func(_ context.Context, cmd commands.CreateAccountCommand) (commands.SignedInAccount, error) {
				return commands.SignedInAccount{
					Token:   "signed",
					Account: account.Snapshot{ID: 2, Username: cmd.Username(), FirstName: cmd.FirstName(), LastName: cmd.LastName()},
				}, nil
			}),
	})

	rec := api.do(http.MethodPost, "/users",
		`{"username": "bob", "firstname": "Bob", "lastname": "Builder", "password": "hunter2"}`, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	got := decode[TokenResponse](t, rec.Body.Bytes())
	assert.Equal(t, "signed", got.Token)
	assert.Equal(t, "bob", got.User.Username)
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestSignup_Duplicate(t *testing.T) {
	api := newTestAPI(t, Handlers{
		CreateAccount: handlerFunc[commands.CreateAccountCommand, commands.SignedInAccount](
			func(_ context.Context, cmd commands.CreateAccountCommand) (commands.SignedInAccount, error) {
				return commands.SignedInAccount{}, errs.NewConflictError("username", cmd.Username())
			}),
	})

	rec := api.do(http.MethodPost, "/users",
		`{"username": "bob", "firstname": "Bob", "lastname": "Builder", "password": "hunter2"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthenticate(t *testing.T) {
	api := newTestAPI(t, Handlers{
		Authenticate: lookupFunc[commands.AuthenticateCommand, account.Snapshot](
			func(_ context.Context, cmd commands.AuthenticateCommand) (account.Snapshot, bool, error) {
				if cmd.Username() == "alice" && cmd.Password() == "s3cret" {
					return alice, true, nil
				}
				return account.Snapshot{}, false, nil
			}),
	})

	rec := api.do(http.MethodPost, "/users/authenticate", `{"username": "alice", "password": "s3cret"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[TokenResponse](t, rec.Body.Bytes())
	assert.Equal(t, alice, got.User)

	verified, err := api.tokens.Verify(got.Token)
	require.NoError(t, err)
	assert.Equal(t, alice, verified)

	wrongPassword := api.do(http.MethodPost, "/users/authenticate", `{"username": "alice", "password": "nope"}`, "")
	unknownUser := api.do(http.MethodPost, "/users/authenticate", `{"username": "ghost", "password": "s3cret"}`, "")
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())

	assert.Contains(t, api.recorder.Events(), "auth_success")
	assert.Contains(t, api.recorder.Events(), "auth_failure")
}

func TestAuthenticate_RateLimited(t *testing.T) {
	calls := 0
	handlers := Handlers{
		Authenticate: lookupFunc[commands.AuthenticateCommand, account.Snapshot](
			func(context.Context, commands.AuthenticateCommand) (account.Snapshot, bool, error) {
				calls++
				return account.Snapshot{}, false, nil
			}),
	}

	api := newTestAPI(t, handlers)
	// Replace the generous default limiter with a strict one.
	e := echo.New()
	e.HTTPErrorHandler = NewErrorHandler(false, discardLogger())
	server := NewServer(handlers, api.tokens, api.recorder, discardLogger())
	server.RegisterRoutes(e, BearerAuth(api.tokens, api.recorder, discardLogger()), LoginRateLimiter(0.001, 2))
	api.echo = e

	codes := make([]int, 0, 4)
	for range 4 {
		codes = append(codes, api.do(http.MethodPost, "/users/authenticate", `{"username": "a", "password": "b"}`, "").Code)
	}

	assert.Equal(t, []int{401, 401, 429, 429}, codes)
	assert.Equal(t, 2, calls)
}

func TestProducts_PublicReads(t *testing.T) {
	api := newTestAPI(t, Handlers{
		Products: stubProducts{},
	})

	rec := api.do(http.MethodGet, "/products/category/books", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]Product](t, rec.Body.Bytes())
	require.Len(t, got, 1)
	assert.Equal(t, "books", got[0].Category)

	rec = api.do(http.MethodGet, "/products/4", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), decode[Product](t, rec.Body.Bytes()).ID)
}

func TestProducts_WritesRequireToken(t *testing.T) {
	api := newTestAPI(t, Handlers{
		CreateProduct: handlerFunc[commands.CreateProductCommand, *product.Product](
			func(_ context.Context, cmd commands.CreateProductCommand) (*product.Product, error) {
				return product.RestoreProduct(9, cmd.Name(), cmd.Price(), cmd.Category())
			}),
	})

	body := `{"name": "Lamp", "price": 1999, "category": "home"}`
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/products", body, "").Code)

	rec := api.do(http.MethodPost, "/products", body, api.aliceAuth)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, Product{ID: 9, Name: "Lamp", Price: 1999, Category: "home"}, decode[Product](t, rec.Body.Bytes()))
}

type stubProducts struct{}

func (stubProducts) List(_ context.Context, q queries.ListProductsQuery) ([]queries.ProductResponse, error) {
	return []queries.ProductResponse{{ID: 1, Name: "Dune", Price: 1299, Category: q.Category()}}, nil
}

func (stubProducts) Get(_ context.Context, q queries.GetProductQuery) (queries.ProductResponse, error) {
	return queries.ProductResponse{ID: q.ProductID(), Name: "Lamp", Price: 4500}, nil
}
