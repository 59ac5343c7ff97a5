package postgres_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	postgres_adapter "cafeteria/internal/adapters/out/postgres"
	"cafeteria/internal/adapters/out/postgres/cartrepo"
	"cafeteria/internal/adapters/out/postgres/coderepo"
	"cafeteria/internal/adapters/out/postgres/notificationrepo"
	"cafeteria/internal/adapters/out/postgres/orderrepo"
	"cafeteria/internal/adapters/out/postgres/pgtest"
	"cafeteria/internal/adapters/out/postgres/productrepo"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	pgtest.Suite
	factory ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	suite.StartPostgres()
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Suite.SetupTest()

	products := productrepo.NewGormProductRepository(suite.DB)
	suite.Require().NoError(products.Save(context.Background(), productrepo.ProductDTO{
		ID: 1, Name: "Medialuna", Price: decimal.RequireFromString("5.00"), Stock: 10, Active: true,
	}))
	suite.Require().NoError(products.Save(context.Background(), productrepo.ProductDTO{
		ID: 2, Name: "Cafe", Price: decimal.RequireFromString("3.00"), Stock: 100, Active: true,
	}))
	suite.Require().NoError(products.Save(context.Background(), productrepo.ProductDTO{
		ID: 3, Name: "Tostado", Price: decimal.RequireFromString("7.50"), Stock: 4, Active: false,
	}))
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(code string) *order.Order {
	c, err := kernel.NewOrderCode(code)
	suite.Require().NoError(err)
	price, err := kernel.MoneyFromString("5.00")
	suite.Require().NoError(err)
	line, err := order.NewLine(1, 2, price)
	suite.Require().NoError(err)
	o, err := order.NewOrder(c, 42, time.Now().Add(time.Hour), []order.Line{line})
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) stock(id kernel.ProductID) int {
	var dto productrepo.ProductDTO
	suite.Require().NoError(suite.DB.First(&dto, "id = ?", int64(id)).Error)
	return dto.Stock
}

func (suite *UnitOfWorkIntegrationTestSuite) orderCount() int64 {
	var n int64
	suite.Require().NoError(suite.DB.Model(&orderrepo.OrderDTO{}).Count(&n).Error)
	return n
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrderAndStock() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.StockLedger().Decrement(ctx, 1, 2))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder("ABC123")))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(8, suite.stock(1))
	suite.Equal(int64(1), suite.orderCount())
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
	suite.Equal(int64(1), suite.orderCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrderAndStock() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.StockLedger().Decrement(ctx, 1, 2))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder("ABC123")))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(10, suite.stock(1))
	suite.Equal(int64(0), suite.orderCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin() {
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestStockLedger() {
	ctx := context.Background()
	ledger := suite.factory.Create().StockLedger()

	available, err := ledger.Available(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal(10, available)

	ok, err := ledger.CheckAvailable(ctx, 1, 11)
	suite.Require().NoError(err)
	suite.False(ok)

	err = ledger.Decrement(ctx, 1, 11)
	var stockErr *errs.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Equal(10, stockErr.Available)
	suite.Equal(10, suite.stock(1))

	suite.Require().NoError(ledger.Increment(ctx, 1, 5))
	suite.Equal(15, suite.stock(1))

	_, err = ledger.Available(ctx, 3)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "inactive products are not visible")
	suite.Require().ErrorIs(ledger.Decrement(ctx, 99, 1), errs.ErrObjectNotFound)
	suite.Require().ErrorIs(ledger.Increment(ctx, 99, 1), errs.ErrObjectNotFound)
	suite.Require().ErrorIs(ledger.Decrement(ctx, 1, 0), errs.ErrValueIsInvalid)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPriceCatalog() {
	price, err := suite.factory.Create().PriceCatalog().UnitPrice(context.Background(), 2)

	suite.Require().NoError(err)
	suite.Equal("3.00", price.String())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentDecrementsNeverOversell() {
	var g errgroup.Group
	results := make(chan error, 25)
	for range 25 {
		g.Go(func() error {
			ctx := context.Background()
			uow := suite.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				return err
			}
			defer func() { _ = uow.Rollback(ctx) }()

			if err := uow.StockLedger().Decrement(ctx, 1, 1); err != nil {
				results <- err
				return nil
			}
			results <- uow.Commit(ctx)
			return nil
		})
	}
	suite.Require().NoError(g.Wait())
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrInsufficientStock):
			rejected++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(10, succeeded)
	suite.Equal(15, rejected)
	suite.Equal(0, suite.stock(1))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCodeRegistry() {
	ctx := context.Background()
	registry := coderepo.NewGormCodeRegistry(suite.DB)
	code, err := kernel.NewOrderCode("QTX042")
	suite.Require().NoError(err)

	ok, err := registry.Reserve(ctx, code)
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = registry.Reserve(ctx, code)
	suite.Require().NoError(err)
	suite.False(ok)

	n, err := registry.Count(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(1), n)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCodeRegistry_SurvivesRolledBackSubmission() {
	ctx := context.Background()
	registry := coderepo.NewGormCodeRegistry(suite.DB)
	code, err := kernel.NewOrderCode("QTX042")
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	ok, err := registry.Reserve(ctx, code)
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Require().NoError(uow.Rollback(ctx))

	ok, err = registry.Reserve(ctx, code)
	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCartRepository() {
	ctx := context.Background()
	carts := cartrepo.NewGormCartRepository(suite.DB)

	suite.Require().NoError(carts.Put(ctx, 42, 1, 2))
	suite.Require().NoError(carts.Put(ctx, 42, 1, 3))
	suite.Require().NoError(carts.Put(ctx, 42, 2, 1))
	suite.Require().NoError(carts.Put(ctx, 7, 2, 1))

	items, err := carts.Items(ctx, 42)
	suite.Require().NoError(err)
	suite.Equal(map[kernel.ProductID]int{1: 3, 2: 1}, items)

	suite.Require().NoError(carts.Clear(ctx, 42))

	items, err = carts.Items(ctx, 42)
	suite.Require().NoError(err)
	suite.Empty(items)

	items, err = carts.Items(ctx, 7)
	suite.Require().NoError(err)
	suite.Len(items, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestNotificationRepository() {
	ctx := context.Background()
	repo := notificationrepo.NewGormNotificationRepository(suite.DB, slog.New(slog.NewTextHandler(io.Discard, nil)))

	repo.Notify(ctx, 42, "Order ABC123 was created. We will let you know when it is ready.")
	repo.Notify(ctx, 42, "Order ABC123 is being prepared.")
	repo.Notify(ctx, 7, "Order XYZ789 is ready for pickup.")

	list, err := repo.ListForUser(ctx, 42)
	suite.Require().NoError(err)
	suite.Require().Len(list, 2)
	suite.Equal("Order ABC123 is being prepared.", list[0].Message)
	suite.False(list[0].Read)

	suite.Require().NoError(repo.MarkRead(ctx, 42))
	list, err = repo.ListForUser(ctx, 42)
	suite.Require().NoError(err)
	for _, n := range list {
		suite.True(n.Read)
	}

	suite.Require().NoError(repo.DeleteForUser(ctx, 42))
	list, err = repo.ListForUser(ctx, 42)
	suite.Require().NoError(err)
	suite.Empty(list)

	list, err = repo.ListForUser(ctx, 7)
	suite.Require().NoError(err)
	suite.Len(list, 1)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
