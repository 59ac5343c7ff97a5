package queries

import (
	"errors"
	"strings"

	"cafeteria/internal/pkg/guard"
)

var ErrFindOrdersByCodeQueryIsNotConstructed = errors.New(
	"FindOrdersByCodeQuery must be created via NewFindOrdersByCodeQuery constructor",
)

// FindOrdersByCodeQuery looks an order up by the code printed on the
// customer's ticket. Input is trimmed and uppercased, so " qtx042" finds QTX042.
type FindOrdersByCodeQuery struct {
	code string

	guard guard.ConstructorGuard
}

func NewFindOrdersByCodeQuery(code string) FindOrdersByCodeQuery {
	return FindOrdersByCodeQuery{
		code:  strings.ToUpper(strings.TrimSpace(code)),
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q FindOrdersByCodeQuery) Validate() error {
	return q.guard.Validate(ErrFindOrdersByCodeQueryIsNotConstructed)
}

// Code returns the normalised code.
func (q FindOrdersByCodeQuery) Code() string {
	return q.code
}
