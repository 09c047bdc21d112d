package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"

	"github.com/plantnet/plantnet-api/internal/core/ports"
)

var errAPIKeyRequired = errors.New("stripe api key is required")

// intentCreator is the subset of the Stripe API used here.
type intentCreator func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)

// StripeGateway opens card payment intents with Stripe.
type StripeGateway struct {
	create intentCreator
}

// NewStripeGateway configures the Stripe SDK with apiKey.
func NewStripeGateway(apiKey string) (*StripeGateway, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}
	stripe.Key = apiKey
	return &StripeGateway{create: paymentintent.New}, nil
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, req ports.PaymentIntentRequest) (*ports.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.AmountMinor),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.create(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return nil, fmt.Errorf("stripe %s: %s", stripeErr.Code, stripeErr.Msg)
		}
		return nil, fmt.Errorf("stripe: %w", err)
	}
	return &ports.PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
