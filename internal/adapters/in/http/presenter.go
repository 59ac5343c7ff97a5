package http

import (
	"time"

	"cafeteria/internal/core/application/fulfillment"
	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"
)

// statusView is how a status is shown to people.
type statusView struct {
	Label string `json:"label"`
	Badge string `json:"badge"`
	Icon  string `json:"icon"`
}

var statusViews = map[order.Status]statusView{
	order.Pending:       {Label: "Pending", Badge: "warning", Icon: "bi-clock-history"},
	order.InPreparation: {Label: "In preparation", Badge: "info", Icon: "bi-hourglass-split"},
	order.Ready:         {Label: "Ready for pickup", Badge: "success", Icon: "bi-check-circle"},
	order.Delivered:     {Label: "Delivered", Badge: "secondary", Icon: "bi-bag-check"},
	order.Cancelled:     {Label: "Cancelled", Badge: "danger", Icon: "bi-x-circle"},
}

var unknownStatusView = statusView{Label: "Unknown", Badge: "light", Icon: "bi-question-circle"}

func viewOf(s order.Status) statusView {
	if v, ok := statusViews[s]; ok {
		return v
	}
	return unknownStatusView
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type submitOrderRequest struct {
	CustomerID    int64     `json:"customer_id"`
	DeliveryAt    time.Time `json:"delivery_at"`
	Notes         string    `json:"notes"`
	PaymentMethod string    `json:"payment_method"`
	Lines         []struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	} `json:"lines"`
}

type transitionRequest struct {
	NotifyUserID *int64 `json:"notify_user_id"`
	Reason       string `json:"reason"`
}

type transitionResponse struct {
	ID            string `json:"id"`
	StatusChanged bool   `json:"status_changed"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type checkoutRequest struct {
	DeliveryAt    time.Time `json:"delivery_at"`
	Notes         string    `json:"notes"`
	PaymentMethod string    `json:"payment_method"`
}

type cartItemResponse struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type cartResponse struct {
	Items []cartItemResponse `json:"items"`
}

type notificationResponse struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

type lineResponse struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

type orderResponse struct {
	ID            string         `json:"id"`
	Code          string         `json:"code"`
	CustomerID    int64          `json:"customer_id"`
	Status        string         `json:"status"`
	StatusView    statusView     `json:"status_view"`
	DeliveryAt    time.Time      `json:"delivery_at"`
	CreatedAt     time.Time      `json:"created_at"`
	Notes         string         `json:"notes,omitempty"`
	PaymentMethod string         `json:"payment_method,omitempty"`
	Total         string         `json:"total"`
	Version       int            `json:"version"`
	Lines         []lineResponse `json:"lines"`
}

type customerOrdersResponse struct {
	Orders    []orderResponse `json:"orders"`
	Active    []orderResponse `json:"active"`
	Completed []orderResponse `json:"completed"`
}

type salesResponse struct {
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	DeliveredOrders int       `json:"delivered_orders"`
	Revenue         string    `json:"revenue"`
}

func toOrderResponse(o *order.Order) orderResponse {
	lines := make([]lineResponse, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, lineResponse{
			ProductID: int64(l.ProductID()),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice().String(),
			Subtotal:  l.Subtotal().String(),
		})
	}

	return orderResponse{
		ID:            o.ID().String(),
		Code:          o.Code().String(),
		CustomerID:    int64(o.CustomerID()),
		Status:        o.Status().String(),
		StatusView:    viewOf(o.Status()),
		DeliveryAt:    o.DeliveryAt(),
		CreatedAt:     o.CreatedAt(),
		Notes:         o.Notes(),
		PaymentMethod: o.PaymentMethod(),
		Total:         o.Total().String(),
		Version:       o.Version(),
		Lines:         lines,
	}
}

func toOrderResponses(orders []*order.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

// toGroupedResponse keys the groups by status tag. Every status is present.
func toGroupedResponse(grouped map[order.Status][]*order.Order) map[string][]orderResponse {
	out := make(map[string][]orderResponse, len(order.AllStatuses()))
	for _, s := range order.AllStatuses() {
		out[s.String()] = toOrderResponses(grouped[s])
	}
	return out
}

func toCartResponse(lines []commands.LineItem) cartResponse {
	items := make([]cartItemResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, cartItemResponse{ProductID: int64(l.ProductID), Quantity: l.Quantity})
	}
	return cartResponse{Items: items}
}

func toNotificationResponses(notifications []ports.Notification) []notificationResponse {
	out := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, notificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
			Read:      n.Read,
		})
	}
	return out
}

func toSalesResponse(s fulfillment.SalesSummary) salesResponse {
	return salesResponse{
		From:            s.From,
		To:              s.To,
		DeliveredOrders: s.DeliveredOrders,
		Revenue:         s.Revenue.String(),
	}
}
