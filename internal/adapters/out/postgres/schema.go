package postgres

import (
	"context"
	"fmt"
	"strings"

	"cafeteria/internal/adapters/out/postgres/cartrepo"
	"cafeteria/internal/adapters/out/postgres/coderepo"
	"cafeteria/internal/adapters/out/postgres/notificationrepo"
	"cafeteria/internal/adapters/out/postgres/orderrepo"
	"cafeteria/internal/adapters/out/postgres/productrepo"

	"gorm.io/gorm"
)

func models() []any {
	return []any{
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&coderepo.IssuedCodeDTO{},
		&cartrepo.CartItemDTO{},
		&notificationrepo.NotificationDTO{},
	}
}

// Migrate creates or updates every table used by the adapters.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Truncate empties every table. Only tests call it.
func Truncate(ctx context.Context, db *gorm.DB) error {
	tables := make([]string, 0, len(models()))
	for _, m := range models() {
		tables = append(tables, m.(interface{ TableName() string }).TableName())
	}
	return db.WithContext(ctx).Exec("TRUNCATE TABLE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE").Error
}
