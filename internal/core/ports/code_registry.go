package ports

import (
	"context"

	"cafeteria/internal/core/domain/model/kernel"
)

// CodeRegistry records every order code ever issued.
type CodeRegistry interface {
	// Reserve atomically checks and records code. It returns false when the
	// code was already issued. Reservations are permanent.
	Reserve(ctx context.Context, code kernel.OrderCode) (bool, error)
}
