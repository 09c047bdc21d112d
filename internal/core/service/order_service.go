package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/plantnet/plantnet-api/internal/core/domain"
	"github.com/plantnet/plantnet-api/internal/core/ports"
	"github.com/plantnet/plantnet-api/internal/pkg/metrics"
)

// OrderService implements the order-placement workflow.
//
// Stock is reserved with a single conditional decrement before the order is
// written, so two concurrent orders can never overdraw a plant. If the order
// insert fails afterwards the reservation is handed back.
type OrderService struct {
	plants ports.PlantRepository
	orders ports.OrderRepository
	guard  ports.TransactionGuard
	log    zerolog.Logger
	now    func() time.Time
}

// NewOrderService returns an OrderService. guard may be nil, in which case
// transaction reuse is only caught by the orders unique index.
func NewOrderService(
	plants ports.PlantRepository,
	orders ports.OrderRepository,
	guard ports.TransactionGuard,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		plants: plants,
		orders: orders,
		guard:  guard,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// PlaceOrder validates the request against current stock, reserves the units
// and persists the order. It returns the new order id.
func (s *OrderService) PlaceOrder(ctx context.Context, in ports.PlaceOrderInput) (string, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.PlantID = strings.TrimSpace(in.PlantID)
	in.TransactionID = strings.TrimSpace(in.TransactionID)

	// 1. Required fields.
	if in.Email == "" || in.PlantID == "" || in.TransactionID == "" {
		s.reject("missing_fields")
		return "", fmt.Errorf("%w: missing required fields", domain.ErrInvalidRequest)
	}
	if in.Quantity <= 0 {
		s.reject("invalid_quantity")
		return "", fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidRequest)
	}

	// 2. Plant must exist.
	plant, err := s.plants.FindByID(ctx, in.PlantID)
	if err != nil {
		if errors.Is(err, domain.ErrPlantNotFound) {
			s.reject("plant_not_found")
		}
		return "", fmt.Errorf("place order: %w", err)
	}

	// 3. Fast fail on the last known stock. The authoritative check is the
	// conditional decrement below.
	if !plant.InStock(in.Quantity) {
		s.reject("insufficient_stock")
		return "", fmt.Errorf("place order: %w (requested %d, available %d)",
			domain.ErrInsufficientStock, in.Quantity, plant.Quantity)
	}

	// 4. One order per payment transaction.
	claimed := false
	if s.guard != nil {
		ok, err := s.guard.Claim(ctx, in.TransactionID)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("transaction_id", in.TransactionID).Msg("transaction claim failed, relying on unique index")
		case !ok:
			s.reject("duplicate_transaction")
			return "", fmt.Errorf("place order: %w", domain.ErrDuplicateTransaction)
		default:
			claimed = true
		}
	}

	// 5. Reserve stock: decrement iff enough units remain.
	if err := s.plants.DecrementStock(ctx, in.PlantID, in.Quantity); err != nil {
		s.releaseClaim(ctx, claimed, in.TransactionID)
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			s.reject("insufficient_stock")
		case errors.Is(err, domain.ErrPlantNotFound):
			s.reject("plant_not_found")
		}
		return "", fmt.Errorf("place order: reserve stock: %w", err)
	}

	// 6. Persist the order.
	order := &domain.Order{
		Email:         in.Email,
		PlantID:       in.PlantID,
		Quantity:      in.Quantity,
		TransactionID: in.TransactionID,
		Metadata:      in.Metadata,
		CreatedAt:     s.now(),
	}
	id, err := s.orders.Create(ctx, order)
	if err != nil {
		s.compensate(ctx, in)
		s.releaseClaim(ctx, claimed, in.TransactionID)
		if errors.Is(err, domain.ErrDuplicateTransaction) {
			s.reject("duplicate_transaction")
		}
		return "", fmt.Errorf("place order: insert: %w", err)
	}

	metrics.OrdersPlacedTotal.Inc()
	metrics.StockUnitsSoldTotal.Add(float64(in.Quantity))

	s.log.Info().
		Str("order_id", id).
		Str("plant_id", in.PlantID).
		Str("email", in.Email).
		Int("quantity", in.Quantity).
		Msg("order placed")

	return id, nil
}

// compensate hands reserved units back after a failed insert. The request
// context may already be cancelled, so the restore runs on a detached one.
func (s *OrderService) compensate(ctx context.Context, in ports.PlaceOrderInput) {
	restoreCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := s.plants.RestoreStock(restoreCtx, in.PlantID, in.Quantity); err != nil {
		s.log.Error().Err(err).
			Str("plant_id", in.PlantID).
			Int("quantity", in.Quantity).
			Msg("failed to restore stock after order insert failure")
		return
	}
	s.log.Warn().Str("plant_id", in.PlantID).Int("quantity", in.Quantity).Msg("stock reservation rolled back")
}

func (s *OrderService) releaseClaim(ctx context.Context, claimed bool, transactionID string) {
	if !claimed {
		return
	}
	if err := s.guard.Release(context.WithoutCancel(ctx), transactionID); err != nil {
		s.log.Warn().Err(err).Str("transaction_id", transactionID).Msg("failed to release transaction claim")
	}
}

func (s *OrderService) reject(reason string) {
	metrics.OrderRejectionsTotal.WithLabelValues(reason).Inc()
}
