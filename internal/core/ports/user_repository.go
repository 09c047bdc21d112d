package ports

import (
	"context"
	"time"

	"github.com/plantnet/plantnet-api/internal/core/domain"
)

// UserReader is the read-only view the role guard needs.
type UserReader interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	UserReader
	// Create inserts a user. A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, u *domain.User) (string, error)
	// List returns every user except the one owning excludeEmail.
	List(ctx context.Context, excludeEmail string) ([]*domain.User, error)
	UpdateLastLogin(ctx context.Context, email string, at time.Time) (bool, error)
	UpdateRole(ctx context.Context, id string, role domain.Role, status domain.UserStatus) (bool, error)
	UpdateStatus(ctx context.Context, email string, status domain.UserStatus) (bool, error)
}
