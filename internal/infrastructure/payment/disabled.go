package payment

import (
	"context"
	"errors"

	"github.com/plantnet/plantnet-api/internal/core/ports"
)

var errNotConfigured = errors.New("payment processor not configured")

// DisabledGateway stands in when no Stripe key is configured. Every intent
// request fails.
type DisabledGateway struct{}

func (DisabledGateway) CreatePaymentIntent(context.Context, ports.PaymentIntentRequest) (*ports.PaymentIntent, error) {
	return nil, errNotConfigured
}
