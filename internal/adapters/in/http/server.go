// Package http exposes the storefront use cases over a JSON API built on echo.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/ports"
	"storefront/internal/metrics"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Recorder receives business events worth counting.
type Recorder interface {
	RecordOrderCreated()
	RecordStatusChange(status string)
	RecordOrderDeleted()
	RecordLineItemAdded()
	RecordLineItemRejected(reason string)
	RecordAuthAttempt(success bool)
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	issuer   ports.TokenIssuer
	metrics  Recorder
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, issuer ports.TokenIssuer, metrics Recorder, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		issuer:   issuer,
		metrics:  metrics,
		logger:   logger.With("component", "http_server"),
	}
}

// CreateUser handles POST /users - registers an account and returns a token for it.
func (s *Server) CreateUser(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	cmd, err := commands.NewCreateAccountCommand(req.Username, req.FirstName, req.LastName, req.Password)
	if err != nil {
		return err
	}

	signedIn, err := s.handlers.CreateAccount.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, TokenResponse{Token: signedIn.Token, User: signedIn.Account})
}

// Authenticate handles POST /users/authenticate - exchanges credentials for a token.
// Unknown usernames and wrong passwords produce the same response.
func (s *Server) Authenticate(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	cmd, err := commands.NewAuthenticateCommand(req.Username, req.Password)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err = s.issuer.Ready(); err != nil {
		return err
	}

	snapshot, ok, err := s.handlers.Authenticate.Handle(ctx, cmd)
	if err != nil {
		return err
	}
	s.metrics.RecordAuthAttempt(ok)
	if !ok {
		s.logger.InfoContext(ctx, "Login rejected", "username", req.Username)
		return errs.NewUnauthenticatedError("invalid username or password")
	}

	token, err := s.issuer.Issue(snapshot)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token, User: snapshot})
}

// GetUsers handles GET /users.
func (s *Server) GetUsers(c echo.Context) error {
	users, err := s.handlers.Accounts.List(c.Request().Context(), queries.NewListAccountsQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser handles GET /users/:id.
func (s *Server) GetUser(c echo.Context) error {
	id, err := pathID(c, "id", "user id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetAccountQuery(id)
	if err != nil {
		return err
	}
	user, err := s.handlers.Accounts.Get(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetProducts handles GET /products and GET /products/category/:category.
func (s *Server) GetProducts(c echo.Context) error {
	query := queries.NewListProductsQuery(c.Param("category"))
	products, err := s.handlers.Products.List(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productsFromResponse(products))
}

// GetProduct handles GET /products/:id.
func (s *Server) GetProduct(c echo.Context) error {
	id, err := pathID(c, "id", "product id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetProductQuery(id)
	if err != nil {
		return err
	}
	p, err := s.handlers.Products.Get(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Product(p))
}

// CreateProduct handles POST /products.
func (s *Server) CreateProduct(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	cmd, err := commands.NewCreateProductCommand(req.Name, req.Price, req.Category)
	if err != nil {
		return err
	}
	created, err := s.handlers.CreateProduct.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, productFromDomain(created))
}

// UpdateProduct handles PUT /products/:id.
func (s *Server) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id", "product id")
	if err != nil {
		return err
	}
	var req ProductRequest
	if err = c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	cmd, err := commands.NewUpdateProductCommand(id, req.Name, req.Price, req.Category)
	if err != nil {
		return err
	}
	updated, err := s.handlers.UpdateProduct.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productFromDomain(updated))
}

// DeleteProduct handles DELETE /products/:id.
func (s *Server) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id", "product id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteProductCommand(id)
	if err != nil {
		return err
	}
	deleted, err := s.handlers.DeleteProduct.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productFromDomain(deleted))
}

// GetOrders handles GET /orders.
func (s *Server) GetOrders(c echo.Context) error {
	orders, err := s.handlers.ListOrders.Handle(c.Request().Context(), queries.NewListOrdersQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ordersFromResponse(orders))
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id", "order id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}
	o, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderFromResponse(o))
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	cmd, err := commands.NewCreateOrderCommand(req.UserID, req.Status)
	if err != nil {
		return err
	}
	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	s.metrics.RecordOrderCreated()
	return c.JSON(http.StatusCreated, orderFromDomain(created))
}

// UpdateOrderStatus handles PUT /orders/:id/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	id, err := pathID(c, "id", "order id")
	if err != nil {
		return err
	}
	var req UpdateStatusRequest
	if err = c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	cmd, err := commands.NewUpdateOrderStatusCommand(id, req.Status)
	if err != nil {
		return err
	}
	updated, err := s.handlers.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	if updated.Changed {
		s.metrics.RecordStatusChange(updated.Order.Status().String())
	}
	return c.JSON(http.StatusOK, orderFromDomain(updated.Order))
}

// DeleteOrder handles DELETE /orders/:id.
func (s *Server) DeleteOrder(c echo.Context) error {
	id, err := pathID(c, "id", "order id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return err
	}
	deleted, err := s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	s.metrics.RecordOrderDeleted()
	return c.JSON(http.StatusOK, orderFromDomain(deleted))
}

// AddProductToOrder handles POST /orders/:id/products.
func (s *Server) AddProductToOrder(c echo.Context) error {
	id, err := pathID(c, "id", "order id")
	if err != nil {
		return err
	}
	var req AddLineItemRequest
	if err = c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	cmd, err := commands.NewAddLineItemCommand(id, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	item, err := s.handlers.AddLineItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		if reason, ok := rejectionReason(err); ok {
			s.metrics.RecordLineItemRejected(reason)
		}
		return err
	}
	s.metrics.RecordLineItemAdded()
	return c.JSON(http.StatusCreated, lineItemFromDomain(item))
}

// GetOrderProducts handles GET /orders/:id/products.
func (s *Server) GetOrderProducts(c echo.Context) error {
	id, err := pathID(c, "id", "order id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderLineItemsQuery(id)
	if err != nil {
		return err
	}
	result, found, err := s.handlers.OrderLineItems.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	if !found {
		return c.JSON(http.StatusNotFound, Message{Message: "order not found"})
	}
	return c.JSON(http.StatusOK, orderWithLineItemsFromResponse(result))
}

// GetCurrentOrder handles GET /orders/user/:userId.
func (s *Server) GetCurrentOrder(c echo.Context) error {
	userID, err := pathID(c, "userId", "user id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetCurrentOrderQuery(userID)
	if err != nil {
		return err
	}
	current, found, err := s.handlers.CurrentOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	if !found {
		return c.JSON(http.StatusNotFound, Message{Message: "no open order for user"})
	}
	return c.JSON(http.StatusOK, orderFromResponse(current))
}

// GetClosedOrders handles GET /orders/user/:userId/closed and its older
// /completed spelling.
func (s *Server) GetClosedOrders(c echo.Context) error {
	userID, err := pathID(c, "userId", "user id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetClosedOrdersQuery(userID)
	if err != nil {
		return err
	}
	orders, err := s.handlers.ClosedOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ordersFromResponse(orders))
}

func pathID(c echo.Context, name, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

func rejectionReason(err error) (string, bool) {
	switch {
	case errors.Is(err, errs.ErrInvalidState):
		return metrics.RejectClosed, true
	case errors.Is(err, errs.ErrObjectNotFound):
		return metrics.RejectNotFound, true
	case errs.IsInvalidArgument(err):
		return metrics.RejectInvalid, true
	default:
		return "", false
	}
}
