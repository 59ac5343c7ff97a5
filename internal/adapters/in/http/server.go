// Package http is the inbound REST adapter of the fulfillment service.
// Requests are validated against the embedded OpenAPI document before they
// reach a handler; handlers translate between JSON and fulfillment.Service.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"cafeteria/internal/core/application/fulfillment"
	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/domain/services"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// FulfillmentService is the part of fulfillment.Service the adapter uses.
type FulfillmentService interface {
	Submit(ctx context.Context, req fulfillment.SubmitOrderRequest) (*order.Order, error)
	AdvanceState(ctx context.Context, orderID kernel.UUID, notifyUserID *kernel.CustomerID) (bool, error)
	Cancel(ctx context.Context, orderID kernel.UUID, reason string, notifyUserID *kernel.CustomerID) (bool, error)
	ListByState(ctx context.Context) (map[order.Status][]*order.Order, error)
	ListByStateAndDateRange(ctx context.Context, start, end time.Time) (map[order.Status][]*order.Order, error)
	FindByCode(ctx context.Context, code string) ([]*order.Order, error)
	FindByCustomer(ctx context.Context, customerID kernel.CustomerID) ([]*order.Order, error)
	CustomerOverview(ctx context.Context, customerID kernel.CustomerID) (fulfillment.CustomerOverview, error)
	SalesSummary(ctx context.Context, start, end time.Time) (fulfillment.SalesSummary, error)
	Restock(ctx context.Context, productID kernel.ProductID, quantity int) error
	ListInState(ctx context.Context, status order.Status) ([]*order.Order, error)
	PutCartItem(ctx context.Context, customerID kernel.CustomerID, productID kernel.ProductID, quantity int) error
	Cart(ctx context.Context, customerID kernel.CustomerID) ([]commands.LineItem, error)
	Checkout(ctx context.Context, req fulfillment.CheckoutRequest) (*order.Order, error)
	Notifications(ctx context.Context, customerID kernel.CustomerID) ([]ports.Notification, error)
	MarkNotificationsRead(ctx context.Context, customerID kernel.CustomerID) error
	DeleteNotifications(ctx context.Context, customerID kernel.CustomerID) error
}

// Server handles the REST routes.
type Server struct {
	service FulfillmentService
	logger  *slog.Logger
}

func NewServer(service FulfillmentService, logger *slog.Logger) *Server {
	return &Server{
		service: service,
		logger:  logger.With("component", "http_server"),
	}
}

// NewRouter builds the echo instance with every route registered.
// gatherer backs /metrics.
func NewRouter(ctx context.Context, s *Server, gatherer prometheus.Gatherer) (*echo.Echo, error) {
	doc, err := LoadSpec(ctx)
	if err != nil {
		return nil, err
	}
	validate, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = registerDocs(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			s.logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(swaggerInstance)))

	api := e.Group("/api/v1", validate)
	api.POST("/orders", s.SubmitOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/search", s.FindOrdersByCode)
	api.POST("/orders/:id/advance", s.AdvanceOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/statuses/:status/orders", s.ListOrdersInStatus)
	api.GET("/customers/:id/orders", s.GetCustomerOrders)
	api.GET("/customers/:id/cart", s.GetCart)
	api.PUT("/customers/:id/cart/:product_id", s.PutCartItem)
	api.POST("/customers/:id/checkout", s.Checkout)
	api.GET("/customers/:id/notifications", s.ListNotifications)
	api.POST("/customers/:id/notifications/read", s.MarkNotificationsRead)
	api.DELETE("/customers/:id/notifications", s.DeleteNotifications)
	api.GET("/sales", s.GetSalesSummary)
	api.POST("/products/:id/restock", s.RestockProduct)

	return e, nil
}

// SubmitOrder handles POST /api/v1/orders.
func (s *Server) SubmitOrder(c echo.Context) error {
	var body submitOrderRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	lines := make([]commands.LineItem, 0, len(body.Lines))
	for _, l := range body.Lines {
		lines = append(lines, commands.LineItem{ProductID: kernel.ProductID(l.ProductID), Quantity: l.Quantity})
	}

	o, err := s.service.Submit(c.Request().Context(), fulfillment.SubmitOrderRequest{
		CustomerID:    kernel.CustomerID(body.CustomerID),
		DeliveryAt:    body.DeliveryAt,
		Lines:         lines,
		Notes:         body.Notes,
		PaymentMethod: body.PaymentMethod,
	})
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, toOrderResponse(o))
}

// ListOrders handles GET /api/v1/orders with optional from and to dates.
func (s *Server) ListOrders(c echo.Context) error {
	var from, to *openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, false, "from", c.QueryParams(), &from); err != nil {
		return badRequest(c, "Invalid parameter from")
	}
	if err := runtime.BindQueryParameter("form", true, false, "to", c.QueryParams(), &to); err != nil {
		return badRequest(c, "Invalid parameter to")
	}

	ctx := c.Request().Context()
	var (
		grouped map[order.Status][]*order.Order
		err     error
	)
	switch {
	case from == nil && to == nil:
		grouped, err = s.service.ListByState(ctx)
	case from != nil && to != nil:
		grouped, err = s.service.ListByStateAndDateRange(ctx, from.Time, to.Time)
	default:
		return badRequest(c, "Parameters from and to must be given together")
	}
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toGroupedResponse(grouped))
}

// FindOrdersByCode handles GET /api/v1/orders/search?code=.
func (s *Server) FindOrdersByCode(c echo.Context) error {
	orders, err := s.service.FindByCode(c.Request().Context(), c.QueryParam("code"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponses(orders))
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance.
func (s *Server) AdvanceOrder(c echo.Context) error {
	return s.transition(c, func(ctx context.Context, id kernel.UUID, req transitionRequest) (bool, error) {
		return s.service.AdvanceState(ctx, id, recipient(req))
	})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	return s.transition(c, func(ctx context.Context, id kernel.UUID, req transitionRequest) (bool, error) {
		return s.service.Cancel(ctx, id, req.Reason, recipient(req))
	})
}

func (s *Server) transition(
	c echo.Context,
	apply func(ctx context.Context, id kernel.UUID, req transitionRequest) (bool, error),
) error {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return badRequest(c, "Invalid order id")
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	var body transitionRequest
	if c.Request().ContentLength != 0 {
		if err = c.Bind(&body); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	changed, err := apply(c.Request().Context(), id, body)
	if err != nil {
		return s.fail(c, err)
	}
	if !changed {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: "Transition is not allowed from the current status",
		})
	}

	return c.JSON(http.StatusOK, transitionResponse{ID: id.String(), StatusChanged: true})
}

// GetCustomerOrders handles GET /api/v1/customers/:id/orders.
func (s *Server) GetCustomerOrders(c echo.Context) error {
	id, err := bindNumericID(c)
	if err != nil {
		return badRequest(c, "Invalid customer id")
	}

	ctx := c.Request().Context()
	history, err := s.service.FindByCustomer(ctx, kernel.CustomerID(id))
	if err != nil {
		return s.fail(c, err)
	}
	overview, err := s.service.CustomerOverview(ctx, kernel.CustomerID(id))
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, customerOrdersResponse{
		Orders:    toOrderResponses(history),
		Active:    toOrderResponses(overview.Active),
		Completed: toOrderResponses(overview.Completed),
	})
}

// GetSalesSummary handles GET /api/v1/sales?from=&to=.
func (s *Server) GetSalesSummary(c echo.Context) error {
	var from, to openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, true, "from", c.QueryParams(), &from); err != nil {
		return badRequest(c, "Invalid parameter from")
	}
	if err := runtime.BindQueryParameter("form", true, true, "to", c.QueryParams(), &to); err != nil {
		return badRequest(c, "Invalid parameter to")
	}

	summary, err := s.service.SalesSummary(c.Request().Context(), from.Time, to.Time)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toSalesResponse(summary))
}

// RestockProduct handles POST /api/v1/products/:id/restock.
func (s *Server) RestockProduct(c echo.Context) error {
	id, err := bindNumericID(c)
	if err != nil {
		return badRequest(c, "Invalid product id")
	}

	var body quantityRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err = s.service.Restock(c.Request().Context(), kernel.ProductID(id), body.Quantity); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListOrdersInStatus handles GET /api/v1/statuses/:status/orders.
func (s *Server) ListOrdersInStatus(c echo.Context) error {
	status, err := order.ParseStatus(c.Param("status"))
	if err != nil {
		return badRequest(c, "Invalid status")
	}

	orders, err := s.service.ListInState(c.Request().Context(), status)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetCart handles GET /api/v1/customers/:id/cart.
func (s *Server) GetCart(c echo.Context) error {
	id, err := bindNumericID(c)
	if err != nil {
		return badRequest(c, "Invalid customer id")
	}

	lines, err := s.service.Cart(c.Request().Context(), kernel.CustomerID(id))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toCartResponse(lines))
}

// PutCartItem handles PUT /api/v1/customers/:id/cart/:product_id.
func (s *Server) PutCartItem(c echo.Context) error {
	id, err := bindNumericID(c)
	if err != nil {
		return badRequest(c, "Invalid customer id")
	}
	productID, err := bindPathInt64(c, "product_id")
	if err != nil {
		return badRequest(c, "Invalid product id")
	}

	var body quantityRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	err = s.service.PutCartItem(c.Request().Context(), kernel.CustomerID(id), kernel.ProductID(productID), body.Quantity)
	if err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Checkout handles POST /api/v1/customers/:id/checkout.
func (s *Server) Checkout(c echo.Context) error {
	id, err := bindNumericID(c)
	if err != nil {
		return badRequest(c, "Invalid customer id")
	}

	var body checkoutRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	o, err := s.service.Checkout(c.Request().Context(), fulfillment.CheckoutRequest{
		CustomerID:    kernel.CustomerID(id),
		DeliveryAt:    body.DeliveryAt,
		Notes:         body.Notes,
		PaymentMethod: body.PaymentMethod,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toOrderResponse(o))
}

// ListNotifications handles GET /api/v1/customers/:id/notifications.
func (s *Server) ListNotifications(c echo.Context) error {
	id, err := bindNumericID(c)
	if err != nil {
		return badRequest(c, "Invalid customer id")
	}

	notifications, err := s.service.Notifications(c.Request().Context(), kernel.CustomerID(id))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toNotificationResponses(notifications))
}

// MarkNotificationsRead handles POST /api/v1/customers/:id/notifications/read.
func (s *Server) MarkNotificationsRead(c echo.Context) error {
	id, err := bindNumericID(c)
	if err != nil {
		return badRequest(c, "Invalid customer id")
	}

	if err = s.service.MarkNotificationsRead(c.Request().Context(), kernel.CustomerID(id)); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteNotifications handles DELETE /api/v1/customers/:id/notifications.
func (s *Server) DeleteNotifications(c echo.Context) error {
	id, err := bindNumericID(c)
	if err != nil {
		return badRequest(c, "Invalid customer id")
	}

	if err = s.service.DeleteNotifications(c.Request().Context(), kernel.CustomerID(id)); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func bindNumericID(c echo.Context) (int64, error) {
	return bindPathInt64(c, "id")
}

func bindPathInt64(c echo.Context, name string) (int64, error) {
	var v int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	return v, err
}

func recipient(req transitionRequest) *kernel.CustomerID {
	if req.NotifyUserID == nil {
		return nil
	}
	id := kernel.CustomerID(*req.NotifyUserID)
	return &id
}

// fail maps domain errors to status codes. Unexpected errors are logged and
// answered with a generic message.
func (s *Server) fail(c echo.Context, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		msg = "Internal server error"
	}
	return c.JSON(status, errorResponse{Code: status, Message: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, services.ErrCodeGenerationExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: msg})
}
