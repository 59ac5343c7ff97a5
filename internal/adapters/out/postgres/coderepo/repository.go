// Package coderepo records issued order codes in the "issued_codes" table.
package coderepo

import (
	"context"
	"errors"
	"time"

	"cafeteria/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// IssuedCodeDTO is one issued code. The primary key makes Reserve an atomic
// check-and-insert.
type IssuedCodeDTO struct {
	Code     string    `gorm:"size:6;primaryKey"`
	IssuedAt time.Time `gorm:"not null"`
}

func (IssuedCodeDTO) TableName() string {
	return "issued_codes"
}

// GormCodeRegistry implements ports.CodeRegistry.
//
// It must be built on a connection outside any submission transaction:
// a reservation stays even when the order that asked for it is rolled back.
// The connection must be opened with gorm.Config.TranslateError.
type GormCodeRegistry struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormCodeRegistry(db *gorm.DB) *GormCodeRegistry {
	return &GormCodeRegistry{db: db, now: time.Now}
}

func (r *GormCodeRegistry) Reserve(ctx context.Context, code kernel.OrderCode) (bool, error) {
	if err := code.Validate(); err != nil {
		return false, err
	}

	dto := IssuedCodeDTO{Code: code.String(), IssuedAt: r.now().UTC()}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Count returns the number of codes issued so far.
func (r *GormCodeRegistry) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&IssuedCodeDTO{}).Count(&n).Error
	return n, err
}
