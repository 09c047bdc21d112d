// Package metrics defines and registers all custom Prometheus metrics for the
// plantNet API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// and exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "plantnet"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersPlacedTotal counts orders that were persisted with their stock reserved.
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders successfully placed.",
	},
)

// OrderRejectionsTotal counts orders refused by the workflow.
// Label:
//   - reason: "missing_fields", "invalid_quantity", "plant_not_found",
//     "insufficient_stock" or "duplicate_transaction"
var OrderRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_rejections_total",
		Help:      "Total number of orders rejected, by reason.",
	},
	[]string{"reason"},
)

// StockUnitsSoldTotal counts plant units removed from stock by placed orders.
var StockUnitsSoldTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_units_sold_total",
		Help:      "Total number of plant units decremented from stock by orders.",
	},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentIntentsTotal counts payment-intent creation attempts.
// Label:
//   - result: "created" or "failed"
var PaymentIntentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intents_total",
		Help:      "Total number of payment intents requested from the processor, by result.",
	},
	[]string{"result"},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UserRegistrationsTotal counts registration calls.
// Label:
//   - result: "created" or "existing"
var UserRegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_registrations_total",
		Help:      "Total number of user registration calls, by result.",
	},
	[]string{"result"},
)
