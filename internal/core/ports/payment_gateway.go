package ports

import "context"

// PaymentIntentRequest is what the payment processor needs to open an intent.
type PaymentIntentRequest struct {
	AmountMinor int64 // amount in the currency's minor unit (cents)
	Currency    string
	Metadata    map[string]string
}

// PaymentIntent is the processor's answer. ClientSecret is handed to the browser.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentGateway abstracts the external payment processor.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntent, error)
}
