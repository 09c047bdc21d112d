package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/plantnet/plantnet-api/internal/core/domain"
)

// CreatePlantInput carries the fields of a new listing.
type CreatePlantInput struct {
	Name        string
	Image       string
	Category    string
	Description string
	Price       decimal.Decimal
	Quantity    int
	Seller      *domain.Seller
}

// PlantService defines use-case operations for the plant catalogue.
type PlantService interface {
	CreatePlant(ctx context.Context, in CreatePlantInput) (string, error)
	ListPlants(ctx context.Context) ([]*domain.Plant, error)
	GetPlant(ctx context.Context, id string) (*domain.Plant, error)
}

// PlaceOrderInput is the normalized order request. The transport layer has
// already resolved which body field carries the purchaser email.
type PlaceOrderInput struct {
	Email         string
	PlantID       string
	Quantity      int
	TransactionID string
	Metadata      map[string]any
}

// OrderService places orders against live stock.
type OrderService interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (string, error)
}

// RegisterUserInput carries the fields of a first-time sign-up.
type RegisterUserInput struct {
	Email string
	Name  string
	Image string
}

// RegisterResult reports the outcome of a registration. When AlreadyExists is
// true nothing was written and InsertedID is empty.
type RegisterResult struct {
	InsertedID    string
	AlreadyExists bool
	Email         string
}

// UserService defines use-case operations for accounts.
type UserService interface {
	Register(ctx context.Context, in RegisterUserInput) (*RegisterResult, error)
	ListUsers(ctx context.Context, callerEmail string) ([]*domain.User, error)
	GetRole(ctx context.Context, email string) (domain.Role, error)
	TouchLastLogin(ctx context.Context, email string, at time.Time) (bool, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (bool, error)
	RequestSeller(ctx context.Context, email string) (bool, error)
}

// SessionService issues, verifies and revokes session tokens.
type SessionService interface {
	Issue(ctx context.Context, email string) (string, *domain.Session, error)
	Verify(ctx context.Context, token string) (*domain.Session, error)
	Revoke(ctx context.Context, token string) error
	TTL() time.Duration
}

// PaymentIntentResult is returned to the storefront checkout.
type PaymentIntentResult struct {
	ClientSecret string
	Amount       decimal.Decimal
	PlantName    string
}

// PaymentService prices a purchase and opens a payment intent for it.
type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, plantID string, quantity int) (*PaymentIntentResult, error)
}
