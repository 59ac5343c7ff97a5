// Package orderrepo persists order aggregates with GORM.
// An order is stored as one row in "orders" plus one row per line in
// "order_lines"; lines are always loaded with their order.
package orderrepo

import (
	"fmt"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the "orders" row. Code is unique; status and created_at are
// indexed for the listing queries.
type OrderDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Code          string         `gorm:"size:6;uniqueIndex;not null"`
	CustomerID    int64          `gorm:"index;not null"`
	DeliveryAt    time.Time      `gorm:"not null"`
	Status        string         `gorm:"size:20;index;not null"`
	CreatedAt     time.Time      `gorm:"index;not null"`
	Notes         string         `gorm:"type:text"`
	PaymentMethod string         `gorm:"size:50"`
	Version       int            `gorm:"not null;default:0"`
	Lines         []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one "order_lines" row. Position keeps the submission order.
type OrderLineDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position  int             `gorm:"not null"`
	ProductID int64           `gorm:"index;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()

	lines := make([]OrderLineDTO, 0, len(o.Lines()))
	for i, line := range o.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:   id,
			Position:  i,
			ProductID: int64(line.ProductID()),
			Quantity:  line.Quantity(),
			UnitPrice: line.UnitPrice().Amount(),
		})
	}

	return OrderDTO{
		ID:            id,
		Code:          o.Code().String(),
		CustomerID:    int64(o.CustomerID()),
		DeliveryAt:    o.DeliveryAt(),
		Status:        o.Status().String(),
		CreatedAt:     o.CreatedAt(),
		Notes:         o.Notes(),
		PaymentMethod: o.PaymentMethod(),
		Version:       o.Version(),
		Lines:         lines,
	}
}

// toDomain expects dto.Lines sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	code, err := kernel.NewOrderCode(dto.Code)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", dto.Code, err)
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		price, err := kernel.NewMoney(l.UnitPrice)
		if err != nil {
			return nil, err
		}

		line, err := order.NewLine(kernel.ProductID(l.ProductID), l.Quantity, price)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		code,
		kernel.CustomerID(dto.CustomerID),
		dto.DeliveryAt,
		dto.CreatedAt,
		status,
		dto.Notes,
		dto.PaymentMethod,
		lines,
		dto.Version,
	)
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
