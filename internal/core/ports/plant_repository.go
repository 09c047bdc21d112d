package ports

import (
	"context"

	"github.com/plantnet/plantnet-api/internal/core/domain"
)

// PlantRepository defines persistence operations for plants.
type PlantRepository interface {
	Create(ctx context.Context, p *domain.Plant) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Plant, error)
	List(ctx context.Context) ([]*domain.Plant, error)

	// DecrementStock atomically removes qty units from the plant, but only if
	// at least qty units are in stock. It returns domain.ErrInsufficientStock
	// when the conditional update matched nothing.
	DecrementStock(ctx context.Context, id string, qty int) error

	// RestoreStock puts qty units back. Used to compensate a reservation whose
	// order could not be persisted.
	RestoreStock(ctx context.Context, id string, qty int) error
}
