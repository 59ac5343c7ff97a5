package productrepo

import (
	"context"
	"errors"
	"fmt"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ports.StockLedger and ports.PriceCatalog.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Save inserts or replaces a product.
func (r *GormProductRepository) Save(ctx context.Context, dto ProductDTO) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error
}

func (r *GormProductRepository) Available(ctx context.Context, productID kernel.ProductID) (int, error) {
	dto, err := r.get(ctx, productID)
	if err != nil {
		return 0, err
	}
	return dto.Stock, nil
}

func (r *GormProductRepository) CheckAvailable(ctx context.Context, productID kernel.ProductID, quantity int) (bool, error) {
	available, err := r.Available(ctx, productID)
	if err != nil {
		return false, err
	}
	return available >= quantity, nil
}

// Decrement takes stock with a single conditional update, so two concurrent
// submissions can never drive the stock below zero.
func (r *GormProductRepository) Decrement(ctx context.Context, productID kernel.ProductID, quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}

	result := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("id = ? AND active AND stock >= ?", int64(productID), quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		available, err := r.Available(ctx, productID)
		if err != nil {
			return err
		}
		return errs.NewInsufficientStockError(int64(productID), quantity, available)
	}
	return nil
}

// Increment adds stock. Inactive products can be restocked.
func (r *GormProductRepository) Increment(ctx context.Context, productID kernel.ProductID, quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}

	result := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("id = ?", int64(productID)).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", int64(productID))
	}
	return nil
}

func (r *GormProductRepository) UnitPrice(ctx context.Context, productID kernel.ProductID) (kernel.Money, error) {
	dto, err := r.get(ctx, productID)
	if err != nil {
		return kernel.Money{}, err
	}
	return kernel.NewMoney(dto.Price)
}

func (r *GormProductRepository) get(ctx context.Context, productID kernel.ProductID) (ProductDTO, error) {
	var dto ProductDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ? AND active", int64(productID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductDTO{}, errs.NewObjectNotFoundError("product", int64(productID))
		}
		return ProductDTO{}, err
	}
	return dto, nil
}
