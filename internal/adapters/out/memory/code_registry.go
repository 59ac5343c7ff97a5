package memory

import (
	"context"
	"sync"

	"cafeteria/internal/core/domain/model/kernel"
)

// CodeRegistry is a process-local set of issued order codes. It is not
// part of any unit of work, so reservations survive rollbacks.
type CodeRegistry struct {
	mu     sync.Mutex
	issued map[kernel.OrderCode]struct{}
}

func NewCodeRegistry() *CodeRegistry {
	return &CodeRegistry{issued: make(map[kernel.OrderCode]struct{})}
}

func (r *CodeRegistry) Reserve(_ context.Context, code kernel.OrderCode) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.issued[code]; ok {
		return false, nil
	}
	r.issued[code] = struct{}{}
	return true, nil
}

// Len returns the number of issued codes.
func (r *CodeRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.issued)
}
