// Package productrepo stores the product catalog and its stock with GORM.
// GormProductRepository serves both as the stock ledger and as the price
// catalog of a unit of work.
package productrepo

import (
	"github.com/shopspring/decimal"
)

// ProductDTO is the "products" row. Inactive products are invisible to the
// ledger and the catalog.
type ProductDTO struct {
	ID     int64           `gorm:"primaryKey;autoIncrement:false"`
	Name   string          `gorm:"size:120;not null"`
	Price  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Stock  int             `gorm:"not null;check:stock >= 0"`
	Active bool            `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}
