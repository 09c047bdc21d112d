package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/plantnet/plantnet-api/internal/core/domain"
	"github.com/plantnet/plantnet-api/internal/core/ports"
	"github.com/plantnet/plantnet-api/internal/pkg/metrics"
)

const defaultCurrency = "usd"

// PaymentService prices a checkout against the catalogue and opens a payment
// intent with the processor. It never touches stock.
type PaymentService struct {
	plants   ports.PlantRepository
	gateway  ports.PaymentGateway
	currency string
	log      zerolog.Logger
}

func NewPaymentService(plants ports.PlantRepository, gateway ports.PaymentGateway, currency string, log zerolog.Logger) *PaymentService {
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = defaultCurrency
	}
	return &PaymentService{plants: plants, gateway: gateway, currency: currency, log: log}
}

// CreatePaymentIntent charges price × quantity for the plant.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, plantID string, quantity int) (*ports.PaymentIntentResult, error) {
	if strings.TrimSpace(plantID) == "" || quantity <= 0 {
		return nil, fmt.Errorf("%w: plant id and a positive quantity are required", domain.ErrInvalidRequest)
	}

	plant, err := s.plants.FindByID(ctx, plantID)
	if err != nil {
		return nil, fmt.Errorf("payment intent: %w", err)
	}
	if !plant.InStock(quantity) {
		return nil, fmt.Errorf("payment intent: %w (requested %d, available %d)",
			domain.ErrInsufficientStock, quantity, plant.Quantity)
	}

	total := plant.Total(quantity)
	intent, err := s.gateway.CreatePaymentIntent(ctx, ports.PaymentIntentRequest{
		AmountMinor: toMinorUnits(total),
		Currency:    s.currency,
		Metadata: map[string]string{
			"plantId":  plantID,
			"quantity": strconv.Itoa(quantity),
		},
	})
	if err != nil {
		metrics.PaymentIntentsTotal.WithLabelValues("failed").Inc()
		s.log.Error().Err(err).Str("plant_id", plantID).Msg("payment intent creation failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentFailed, err)
	}

	metrics.PaymentIntentsTotal.WithLabelValues("created").Inc()
	s.log.Info().
		Str("plant_id", plantID).
		Str("intent_id", intent.ID).
		Str("amount", total.StringFixed(2)).
		Msg("payment intent created")

	return &ports.PaymentIntentResult{
		ClientSecret: intent.ClientSecret,
		Amount:       total,
		PlantName:    plant.Name,
	}, nil
}

// toMinorUnits converts a major-unit amount to cents, rounding half up.
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
