// Package cartrepo stores customer carts in the "cart_items" table.
package cartrepo

import (
	"context"
	"fmt"

	"cafeteria/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemDTO struct {
	CustomerID int64 `gorm:"primaryKey;autoIncrement:false"`
	ProductID  int64 `gorm:"primaryKey;autoIncrement:false"`
	Quantity   int   `gorm:"not null"`
}

func (CartItemDTO) TableName() string {
	return "cart_items"
}

// GormCartRepository implements ports.CartService.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Put sets the quantity of a product in the customer's cart.
func (r *GormCartRepository) Put(ctx context.Context, customerID kernel.CustomerID, productID kernel.ProductID, quantity int) error {
	item := CartItemDTO{CustomerID: int64(customerID), ProductID: int64(productID), Quantity: quantity}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
		}).
		Create(&item).Error
}

// Items returns the cart as product id to quantity.
func (r *GormCartRepository) Items(ctx context.Context, customerID kernel.CustomerID) (map[kernel.ProductID]int, error) {
	var dtos []CartItemDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "customer_id = ?", int64(customerID)).Error; err != nil {
		return nil, err
	}

	items := make(map[kernel.ProductID]int, len(dtos))
	for _, dto := range dtos {
		items[kernel.ProductID(dto.ProductID)] = dto.Quantity
	}
	return items, nil
}

func (r *GormCartRepository) Clear(ctx context.Context, customerID kernel.CustomerID) error {
	err := r.db.WithContext(ctx).Where("customer_id = ?", int64(customerID)).Delete(&CartItemDTO{}).Error
	if err != nil {
		return fmt.Errorf("clear cart of customer %d: %w", customerID, err)
	}
	return nil
}
