package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	storepg "storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/pgtest"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// UnitOfWorkIntegrationTestSuite exercises transactions and row locking
// against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg        *pgtest.Database
	factory   ports.UnitOfWorkFactory
	userID    int64
	productID int64
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = storepg.NewGormUnitOfWorkFactory(pg.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())

	var err error
	suite.userID, err = suite.pg.SeedAccount("alice")
	suite.Require().NoError(err)
	suite.productID, err = suite.pg.SeedProduct("Teapot", 1999, "kitchen")
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMigrate_IsIdempotent() {
	suite.Require().NoError(storepg.Migrate(context.Background(), suite.pg.DB))

	var count int64
	suite.Require().NoError(suite.pg.DB.Raw("SELECT COUNT(*) FROM schema_migrations").Scan(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.AccountRepository())
	suite.NotNil(uow1.ProductRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o, err := order.NewOrder(suite.userID, "")
	suite.Require().NoError(err)
	_, err = uow.OrderRepository().Add(ctx, o)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))
	suite.Equal(int64(0), suite.count("orders"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o, err := order.NewOrder(suite.userID, "")
	suite.Require().NoError(err)
	stored, err := uow.OrderRepository().Add(ctx, o)
	suite.Require().NoError(err)

	item, err := order.NewLineItem(stored.ID(), suite.productID, 2)
	suite.Require().NoError(err)
	_, err = uow.OrderRepository().AddLineItem(ctx, item)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Commit(ctx))
	suite.Equal(int64(1), suite.count("orders"))
	suite.Equal(int64(1), suite.count("order_line_items"))
}

// TestLineItemWaitsForConcurrentClose holds the order row in a closing
// transaction and checks that a concurrent line item insert blocks, then sees
// the committed closed status.
func (suite *UnitOfWorkIntegrationTestSuite) TestLineItemWaitsForConcurrentClose() {
	ctx := context.Background()
	orderID := suite.createOpenOrder()

	closer := suite.factory.Create()
	suite.Require().NoError(closer.Begin(ctx))
	defer func() { _ = closer.Rollback(ctx) }()

	locked, err := closer.OrderRepository().GetForUpdate(ctx, orderID)
	suite.Require().NoError(err)
	_, err = locked.ChangeStatus(order.Closed)
	suite.Require().NoError(err)
	suite.Require().NoError(closer.OrderRepository().UpdateStatus(ctx, locked))

	done := make(chan error, 1)
	go func() {
		done <- suite.addLineItem(ctx, orderID)
	}()

	select {
	case err = <-done:
		suite.FailNow("line item insert did not wait for the order lock", "returned %v", err)
	case <-time.After(300 * time.Millisecond):
	}

	suite.Require().NoError(closer.Commit(ctx))

	select {
	case err = <-done:
		suite.Require().ErrorIs(err, errs.ErrInvalidState)
	case <-time.After(10 * time.Second):
		suite.FailNow("line item insert never finished")
	}
	suite.Equal(int64(0), suite.count("order_line_items"))
}

// TestConcurrentAddAndClose races many inserts against one close and checks
// that the surviving line items are exactly the ones whose transaction
// observed an open order.
func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentAddAndClose() {
	ctx := context.Background()
	const (
		rounds  = 5
		writers = 12
	)

	for round := range rounds {
		orderID := suite.createOpenOrder()

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			rejected  int
			unexpect  []error
		)
		start := make(chan struct{})

		for i := range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				if i == writers/2 {
					if err := suite.closeOrder(ctx, orderID); err != nil {
						mu.Lock()
						unexpect = append(unexpect, err)
						mu.Unlock()
					}
				}
				err := suite.addLineItem(ctx, orderID)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case errors.Is(err, errs.ErrInvalidState):
					rejected++
				default:
					unexpect = append(unexpect, err)
				}
			}()
		}
		close(start)
		wg.Wait()

		suite.Empty(unexpect, "round %d", round)
		suite.Equal(writers, succeeded+rejected, "round %d", round)
		suite.GreaterOrEqual(rejected, 1, "the closer's own insert always runs after close")

		var stored int64
		suite.Require().NoError(suite.pg.DB.Raw(
			"SELECT COUNT(*) FROM order_line_items WHERE order_id = ?", orderID,
		).Scan(&stored).Error)
		suite.Equal(int64(succeeded), stored, "round %d", round)

		var status string
		suite.Require().NoError(suite.pg.DB.Raw("SELECT status FROM orders WHERE id = ?", orderID).Scan(&status).Error)
		suite.Equal("closed", status)

		suite.Require().ErrorIs(suite.addLineItem(ctx, orderID), errs.ErrInvalidState)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createOpenOrder() int64 {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	o, err := order.NewOrder(suite.userID, "")
	suite.Require().NoError(err)
	stored, err := uow.OrderRepository().Add(ctx, o)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))
	return stored.ID()
}

func (suite *UnitOfWorkIntegrationTestSuite) addLineItem(ctx context.Context, orderID int64) error {
	uow := suite.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	item, err := order.NewLineItem(orderID, suite.productID, 1)
	if err != nil {
		return err
	}
	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}
	if err = o.AddLineItem(item); err != nil {
		return err
	}
	if _, err = uow.OrderRepository().AddLineItem(ctx, item); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (suite *UnitOfWorkIntegrationTestSuite) closeOrder(ctx context.Context, orderID int64) error {
	uow := suite.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}
	if _, err = o.ChangeStatus(order.Closed); err != nil {
		return err
	}
	if err = uow.OrderRepository().UpdateStatus(ctx, o); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (suite *UnitOfWorkIntegrationTestSuite) count(table string) int64 {
	var n int64
	suite.Require().NoError(suite.pg.DB.Table(table).Count(&n).Error)
	return n
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
