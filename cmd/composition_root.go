package cmd

import (
	"context"
	"errors"
	"log/slog"

	httpadapter "cafeteria/internal/adapters/in/http"
	"cafeteria/internal/adapters/out/kafka"
	"cafeteria/internal/adapters/out/memory"
	"cafeteria/internal/adapters/out/metrics"
	"cafeteria/internal/adapters/out/postgres"
	"cafeteria/internal/adapters/out/postgres/cartrepo"
	"cafeteria/internal/adapters/out/postgres/coderepo"
	"cafeteria/internal/adapters/out/postgres/notificationrepo"
	"cafeteria/internal/core/application/fulfillment"
	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/application/usecases/queries"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/services"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, handlers and the service for one storage
// backend.
type CompositionRoot struct {
	cfg      Config
	logger   *slog.Logger
	registry *prometheus.Registry
	recorder *metrics.Recorder

	uowFactory ports.UnitOfWorkFactory
	reader     queries.OrderReader
	codes      ports.CodeRegistry
	carts      ports.CartService
	inbox      inboxNotifier
	notifier   ports.Notifier

	closers []func() error
	service *fulfillment.Service
}

// inboxNotifier stores notifications and serves them back to customers.
type inboxNotifier interface {
	ports.Notifier
	ports.NotificationInbox
}

// fanOut delivers each message to every notifier in order.
type fanOut []ports.Notifier

func (f fanOut) Notify(ctx context.Context, userID kernel.CustomerID, message string) {
	for _, n := range f {
		n.Notify(ctx, userID, message)
	}
}

// NewCompositionRoot uses postgres when gormDB is not nil and the in-memory
// store otherwise.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	recorder, err := metrics.NewRecorder(registry)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		recorder: recorder,
	}

	if gormDB != nil {
		c.usePostgres(gormDB)
	} else {
		c.useMemory()
	}

	if cfg.UsesKafka() {
		writer := kafka.NewWriter(kafka.WriterConfig{
			Broker:       cfg.KafkaHost,
			Topic:        cfg.KafkaNotificationsTopic,
			BatchTimeout: cfg.KafkaBatchTimeout,
			Async:        cfg.KafkaAsync,
		}, logger)
		notifier := kafka.NewNotifier(writer, logger)
		c.notifier = fanOut{c.inbox, notifier}
		c.closers = append(c.closers, notifier.Close)
	}

	c.service = fulfillment.NewService(fulfillment.Handlers{
		Submit:           c.CreateSubmitOrderCommandHandler(),
		Advance:          c.CreateAdvanceOrderCommandHandler(),
		Cancel:           c.CreateCancelOrderCommandHandler(),
		Restock:          c.CreateRestockProductCommandHandler(),
		ListByStatus:     queries.NewListOrdersByStatusQueryHandler(c.reader),
		ListInStatus:     queries.NewListOrdersInStatusQueryHandler(c.reader),
		FindByCode:       queries.NewFindOrdersByCodeQueryHandler(c.reader),
		FindByCustomer:   queries.NewFindOrdersByCustomerQueryHandler(c.reader),
		CustomerOverview: queries.NewGetCustomerOverviewQueryHandler(c.reader),
		SalesSummary:     queries.NewGetSalesSummaryQueryHandler(c.reader),
		Carts:            c.carts,
		Inbox:            c.inbox,
	})

	return c, nil
}

func (c *CompositionRoot) usePostgres(db *gorm.DB) {
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
	c.reader = c.uowFactory.Create().OrderRepository()
	c.codes = coderepo.NewGormCodeRegistry(db)
	c.carts = cartrepo.NewGormCartRepository(db)
	c.inbox = notificationrepo.NewGormNotificationRepository(db, c.logger)
	c.notifier = c.inbox
}

func (c *CompositionRoot) useMemory() {
	store := memory.NewStore()
	seedMenu(store)

	c.uowFactory = memory.NewUnitOfWorkFactory(store)
	c.reader = memory.NewOrderRepository(store)
	c.codes = memory.NewCodeRegistry()
	c.carts = memory.NewCarts()
	c.inbox = memory.NewInbox()
	c.notifier = c.inbox
}

func (c *CompositionRoot) Service() *fulfillment.Service {
	return c.service
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	var f commands.UoWFactory = commands.FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitOrderCommandHandler(
		f, services.NewCodeGenerator(c.codes, services.WithAttemptsObserver(c.recorder)), c.carts, c.notifier, c.recorder, c.logger)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.OrderUoWFactory = commands.FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f, c.notifier, c.recorder, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = commands.FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.notifier, c.recorder, c.logger)
}

func (c *CompositionRoot) CreateRestockProductCommandHandler() commands.RestockProductCommandHandler {
	var f commands.StockUoWFactory = commands.FuncStockUoWFactory(func() commands.StockUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRestockProductCommandHandler(f)
}

func (c *CompositionRoot) CreateHTTPServer(ctx context.Context) (*echo.Echo, error) {
	return httpadapter.NewRouter(ctx, httpadapter.NewServer(c.service, c.logger), c.registry)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.service, c.cfg.SalesReportSchedule, c.logger)
}

// Close releases broker connections.
func (c *CompositionRoot) Close() error {
	var errList []error
	for _, closeFn := range c.closers {
		errList = append(errList, closeFn())
	}
	return errors.Join(errList...)
}
