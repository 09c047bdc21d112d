package ports

import (
	"context"

	"github.com/plantnet/plantnet-api/internal/core/domain"
)

// OrderRepository persists orders. Orders are written once and never mutated.
type OrderRepository interface {
	// Create inserts the order and returns its new id. A transaction id that was
	// already used yields domain.ErrDuplicateTransaction.
	Create(ctx context.Context, o *domain.Order) (string, error)
}
