package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"cafeteria/internal/adapters/out/postgres/orderrepo"
	"cafeteria/internal/adapters/out/postgres/pgtest"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type OrderRepositoryIntegrationTestSuite struct {
	pgtest.Suite
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	suite.StartPostgres()
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Suite.SetupTest()
	suite.repository = orderrepo.NewGormOrderRepository(suite.DB)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(code string, customer kernel.CustomerID, createdAt time.Time) *order.Order {
	c, err := kernel.NewOrderCode(code)
	suite.Require().NoError(err)

	five, err := kernel.MoneyFromString("5.00")
	suite.Require().NoError(err)
	three, err := kernel.MoneyFromString("3.00")
	suite.Require().NoError(err)

	first, err := order.NewLine(1, 2, five)
	suite.Require().NoError(err)
	second, err := order.NewLine(2, 1, three)
	suite.Require().NoError(err)

	o, err := order.NewOrder(c, customer, createdAt.Add(time.Hour), []order.Line{first, second},
		order.WithCreatedAt(createdAt),
		order.WithNotes("no sugar"),
		order.WithPaymentMethod("cash"),
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) add(o *order.Order) {
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_AssignsIdentityAndPersistsLines() {
	ctx := context.Background()
	o := suite.newOrder("ABC123", 42, time.Now())

	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.False(o.ID().IsZero())

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsEqual(o))
	suite.Equal("ABC123", stored.Code().String())
	suite.Equal(kernel.CustomerID(42), stored.CustomerID())
	suite.Equal(order.Pending, stored.Status())
	suite.Equal("no sugar", stored.Notes())
	suite.Equal("cash", stored.PaymentMethod())
	suite.Equal(0, stored.Version())
	suite.Equal("13.00", stored.Total().String())

	lines := stored.Lines()
	suite.Require().Len(lines, 2)
	suite.Equal(kernel.ProductID(1), lines[0].ProductID())
	suite.Equal(2, lines[0].Quantity())
	suite.Equal(kernel.ProductID(2), lines[1].ProductID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateCode() {
	suite.add(suite.newOrder("ABC123", 42, time.Now()))

	err := suite.repository.Add(context.Background(), suite.newOrder("ABC123", 7, time.Now()))

	suite.Require().ErrorIs(err, gorm.ErrDuplicatedKey)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructedOrder() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()
	o := suite.newOrder("ABC123", 42, time.Now())
	suite.add(o)

	suite.Require().True(order.NewStateMachine().Advance(o))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Equal(1, o.Version())

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InPreparation, stored.Status())
	suite.Equal(1, stored.Version())
	suite.Len(stored.Lines(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersionIsRejected() {
	ctx := context.Background()
	o := suite.newOrder("ABC123", 42, time.Now())
	suite.add(o)

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	sm := order.NewStateMachine()
	suite.Require().True(sm.Advance(first))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().True(sm.Cancel(second))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	suite.Equal(0, second.Version())

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InPreparation, stored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder() {
	o, err := order.RestoreOrder(kernel.NewUUID(), mustCode(suite.T(), "ZZZ999"), 1, time.Now(), time.Now(),
		order.Pending, "", "", suite.newOrder("AAA111", 1, time.Now()).Lines(), 0)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFinders() {
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	oldest := suite.newOrder("AAA111", 1, day.Add(-48*time.Hour))
	middle := suite.newOrder("BBB222", 2, day)
	newest := suite.newOrder("CCC333", 1, day.Add(2*time.Hour))
	for _, o := range []*order.Order{newest, oldest, middle} {
		suite.add(o)
	}

	suite.Require().True(order.NewStateMachine().Advance(middle))
	suite.Require().NoError(suite.repository.Update(ctx, middle))

	byCode, err := suite.repository.FindByCode(ctx, mustCode(suite.T(), "BBB222"))
	suite.Require().NoError(err)
	suite.Equal([]string{"BBB222"}, codes(byCode))

	byStatus, err := suite.repository.FindByStatus(ctx, order.Pending)
	suite.Require().NoError(err)
	suite.Equal([]string{"AAA111", "CCC333"}, codes(byStatus))

	inRange, err := suite.repository.FindByDateRange(ctx, day.Add(-time.Hour), day.Add(3*time.Hour))
	suite.Require().NoError(err)
	suite.Equal([]string{"BBB222", "CCC333"}, codes(inRange))

	byCustomer, err := suite.repository.FindByCustomer(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal([]string{"CCC333", "AAA111"}, codes(byCustomer))

	all, err := suite.repository.FindAll(ctx)
	suite.Require().NoError(err)
	suite.Equal([]string{"AAA111", "BBB222", "CCC333"}, codes(all))
	for _, o := range all {
		suite.Len(o.Lines(), 2)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.DB.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func mustCode(t *testing.T, s string) kernel.OrderCode {
	t.Helper()
	c, err := kernel.NewOrderCode(s)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func codes(orders []*order.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Code().String())
	}
	return out
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
