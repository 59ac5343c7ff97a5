package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCode(ctx context.Context, code kernel.OrderCode) ([]*order.Order, error) {
	args := m.Called(ctx, code)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID kernel.CustomerID) ([]*order.Order, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockStockLedger struct{ mock.Mock }

func (m *MockStockLedger) Available(ctx context.Context, productID kernel.ProductID) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockStockLedger) CheckAvailable(ctx context.Context, productID kernel.ProductID, quantity int) (bool, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockLedger) Decrement(ctx context.Context, productID kernel.ProductID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockStockLedger) Increment(ctx context.Context, productID kernel.ProductID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

type MockPriceCatalog struct{ mock.Mock }

func (m *MockPriceCatalog) UnitPrice(ctx context.Context, productID kernel.ProductID) (kernel.Money, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(kernel.Money), args.Error(1)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StockLedger() ports.StockLedger {
	args := m.Called()
	return args.Get(0).(ports.StockLedger)
}

func (m *MockUoW) PriceCatalog() ports.PriceCatalog {
	args := m.Called()
	return args.Get(0).(ports.PriceCatalog)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockStockUoWFactory struct{ mock.Mock }

func (m *MockStockUoWFactory) Create() commands.StockUoW {
	args := m.Called()
	return args.Get(0).(commands.StockUoW)
}

type MockCodeGenerator struct{ mock.Mock }

func (m *MockCodeGenerator) Generate(ctx context.Context) (kernel.OrderCode, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.OrderCode), args.Error(1)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) Put(ctx context.Context, customerID kernel.CustomerID, productID kernel.ProductID, quantity int) error {
	args := m.Called(ctx, customerID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartService) Items(ctx context.Context, customerID kernel.CustomerID) (map[kernel.ProductID]int, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.ProductID]int), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, customerID kernel.CustomerID) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, userID kernel.CustomerID, message string) {
	m.Called(ctx, userID, message)
}

type MockMetrics struct{ mock.Mock }

func (m *MockMetrics) OrderSubmitted() {
	m.Called()
}

func (m *MockMetrics) SubmissionRejected(reason string) {
	m.Called(reason)
}

func (m *MockMetrics) OrderTransitioned(to order.Status) {
	m.Called(to)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func storedOrder(t *testing.T, status order.Status, version int) *order.Order {
	t.Helper()

	code, err := kernel.NewOrderCode("ABC123")
	require.NoError(t, err)
	line, err := order.NewLine(1, 2, money(t, "5.00"))
	require.NoError(t, err)

	o, err := order.RestoreOrder(kernel.NewUUID(), code, 42, time.Now().Add(time.Hour), time.Now(),
		status, "", "", []order.Line{line}, version)
	require.NoError(t, err)
	return o
}

func restoreCopy(t *testing.T, o *order.Order) *order.Order {
	t.Helper()

	c, err := order.RestoreOrder(o.ID(), o.Code(), o.CustomerID(), o.DeliveryAt(), o.CreatedAt(),
		o.Status(), o.Notes(), o.PaymentMethod(), o.Lines(), o.Version())
	require.NoError(t, err)
	return c
}
