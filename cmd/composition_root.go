package cmd

import (
	"fmt"
	"log/slog"

	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/security"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/health"
	"storefront/internal/jobs"
	"storefront/internal/metrics"

	"gorm.io/gorm"
)

const version = "1.0.0"

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	hasher     *security.BcryptCredentialHasher
	tokens     *security.TokenAuthority
	metrics    *metrics.StorefrontMetrics
	storeProbe *health.ProbeResult
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	hasher, err := security.NewBcryptCredentialHasher(configs.Security())
	if err != nil {
		return nil, fmt.Errorf("credential hasher: %w", err)
	}
	return &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		hasher:     hasher,
		tokens:     security.NewTokenAuthority(configs.Security()),
		metrics:    metrics.NewStorefrontMetrics(),
		storeProbe: health.NewProbeResult("postgres"),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) Tokens() *security.TokenAuthority {
	return c.tokens
}

func (c *CompositionRoot) Metrics() *metrics.StorefrontMetrics {
	return c.metrics
}

func (c *CompositionRoot) CreateHealthHandler() *health.Handler {
	h := health.NewHandler(version)
	h.RegisterChecker("postgres", c.storeProbe)
	h.RegisterChecker("token_secret", health.NewSimpleChecker("token_secret", c.tokens.Ready))
	return h
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("underlying sql.DB: %w", err)
	}
	probe := jobs.NewStoreProbeJob(sqlDB, c.storeProbe, c.metrics, c.configs.StoreProbeSchedule, c.logger)
	return jobs.NewJobManager(probe), nil
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(c.Handlers(), c.tokens, c.metrics, c.logger)
}

// Handlers wires every use case the HTTP adapter exposes.
func (c *CompositionRoot) Handlers() httpin.Handlers {
	accounts := queries.NewAccountQueryHandler(c.gormDB)
	products := queries.NewProductQueryHandler(c.gormDB)
	getOrder := queries.NewGetOrderQueryHandler(c.gormDB)
	listOrders := queries.NewListOrdersQueryHandler(c.gormDB)
	closedOrders := queries.NewGetClosedOrdersQueryHandler(c.gormDB)
	currentOrder := queries.NewGetCurrentOrderQueryHandler(c.gormDB)
	orderLineItems := queries.NewGetOrderLineItemsQueryHandler(c.gormDB)

	return httpin.Handlers{
		CreateAccount: c.CreateCreateAccountCommandHandler(),
		Authenticate:  c.CreateAuthenticateCommandHandler(),
		Accounts:      accounts,

		CreateProduct: c.CreateCreateProductCommandHandler(),
		UpdateProduct: c.CreateUpdateProductCommandHandler(),
		DeleteProduct: c.CreateDeleteProductCommandHandler(),
		Products:      products,

		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
		DeleteOrder:       c.CreateDeleteOrderCommandHandler(),
		AddLineItem:       c.CreateAddLineItemCommandHandler(),
		GetOrder:          getOrder,
		ListOrders:        listOrders,
		ClosedOrders:      closedOrders,
		CurrentOrder:      currentOrder,
		OrderLineItems:    orderLineItems,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) accountUoWFactory() commands.AccountUoWFactory {
	return FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) productUoWFactory() commands.ProductUoWFactory {
	return FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateAccountCommandHandler() *commands.CreateAccountCommandHandler {
	h := commands.NewCreateAccountCommandHandler(c.accountUoWFactory(), c.hasher, c.tokens)
	return &h
}

func (c *CompositionRoot) CreateAuthenticateCommandHandler() *commands.AuthenticateCommandHandler {
	h := commands.NewAuthenticateCommandHandler(c.accountUoWFactory(), c.hasher)
	return &h
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() *commands.CreateProductCommandHandler {
	h := commands.NewCreateProductCommandHandler(c.productUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateUpdateProductCommandHandler() *commands.UpdateProductCommandHandler {
	h := commands.NewUpdateProductCommandHandler(c.productUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateDeleteProductCommandHandler() *commands.DeleteProductCommandHandler {
	h := commands.NewDeleteProductCommandHandler(c.productUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() *commands.UpdateOrderStatusCommandHandler {
	h := commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() *commands.DeleteOrderCommandHandler {
	h := commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateAddLineItemCommandHandler() *commands.AddLineItemCommandHandler {
	h := commands.NewAddLineItemCommandHandler(c.orderUoWFactory())
	return &h
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}
